// Package backends implements the four ways an action takes effect.
//
// Every backend satisfies Executor. Mutation writes to a regstore.Store in
// process. Shell and Script run the command text through an interpreter and
// capture its output under a timeout. Detached starts a program and returns as
// soon as it has launched.
//
// Backends report failures as coded errors from pkg/errors; turning those into
// an ExecutionResult is the engine's job.
package backends
