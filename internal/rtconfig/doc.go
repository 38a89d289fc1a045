// Package rtconfig parses the runtime's recognized environment
// variables into an immutable Config. Unlike the teacher's
// validate-or-panic constructors, Load reports invalid configuration as
// an error: it runs inside Launch, which must not unconditionally
// terminate the host process on a malformed environment.
package rtconfig
