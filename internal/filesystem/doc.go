/*
Package filesystem wraps the handful of os calls the introspection components
make so that every stat, open and read is timed and reported to the metrics
layer.

# Usage

	info, err := filesystem.Stat(path)

	f, err := filesystem.Open(path)
	if err != nil {
	    return err
	}
	defer f.Close()

File embeds *os.File, so it can be passed anywhere an io.Reader or *os.File
method set is expected. Reads are accumulated and observed once, on Close.

# Metrics

The package does not import the metrics package directly (that would
create an import cycle). Install the Prometheus-backed observer at startup:

	filesystem.SetObserver(metrics.NewFilesystemObserver())

With no observer installed, recording is skipped, which keeps tests free of
global metric state.

# Retries

Operations are never retried. A caller that wants to retry a transient
failure re-invokes the whole operation.
*/
package filesystem
