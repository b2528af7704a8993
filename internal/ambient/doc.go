// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package ambient turns mood detections into a displayed theme.

It has three layers:

  - MoodState and UpdateMoodState: a pure reducer that applies hysteresis so
    near-tied moods do not flap.
  - Controller: animates the displayed theme toward the state's target theme
    one frame at a time. Frames come from an injected Scheduler, so the same
    controller runs on wall-clock timers, inside a Bubble Tea program, or
    under a ManualScheduler in tests.
  - Engine: owns the state, the controller, the active settings and an
    optional external SignalSource, and is what the CLI and preview talk to.

# Concurrency

Timer schedulers fire frames on their own goroutines. Controller and Engine
serialize access with a mutex and never hold it while calling a Sink or a
subscriber. Controller deliveries are ordered: a sink may read Displayed or
Phase, but must not call Update or SetEnabled synchronously. Engine mood
subscribers may call back into the Engine.
*/
package ambient
