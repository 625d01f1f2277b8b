// Package launcher turns a resolved preset into an invocation of the
// external training/decoding entry point. Rendering the argv and running
// it are split: BuildInvocation is pure and fully testable, while the
// Runner interface lets the app swap the real os/exec runner for a
// dry-run printer or a recording fake in tests.
package launcher
