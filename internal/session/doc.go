// Package session implements the interactive gradebook controller.
//
// The controller is an explicit state machine:
//
//	chooseInput → manual | file → analyze → export → chooseRepeat
//	chooseRepeat → chooseInput | done
//
// Each state reads from the injected input, re-prompts locally on bad answers
// and returns the next state. Nothing here computes statistics; analysis is
// delegated to compute.Analyzer and presentation to the report package.
// End of input at any prompt ends the session without an error.
package session
