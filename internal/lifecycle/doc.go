/*
Package lifecycle brings the native subsystems that media-inspector depends
on into a ready state exactly once, and tears them down exactly once.

# Subsystems

A Subsystem is anything with a Start/Stop pair: the Go runtime memory
settings, the external media framework binaries, the libvips graphics
library. The Manager starts them in order on the first Initialize call.

# Guarantees

  - Initialize may be called any number of times from any number of
    goroutines. The first call performs all starts; concurrent first
    callers wait for it and then return. Handles are never acquired twice.
  - A failing subsystem does not abort initialization. The failure is
    logged with the ErrInitialization kind and the process continues in
    degraded mode; operations that need the subsystem fail individually.
  - Shutdown stops only subsystems that started, in reverse order, once.
    Calling it before Initialize, or twice, is safe.

# Usage

	mgr := lifecycle.NewManager(runtimeSubsystem, mediaSubsystem, graphicsSubsystem)
	mgr.Initialize()
	defer mgr.Shutdown()
*/
package lifecycle
