// Package termtest drives console questions through a real pseudo-terminal,
// so that raw key input, cursor movement and redraws can be tested end to
// end.
//
// There are two ways to use it:
//
//  1. Harness runs questions in-process, on the slave side of a PTY pair.
//     Use NewHarness, then Harness.Ask.
//
//  2. Console runs an external process attached to a PTY. Use NewConsole
//     with WithCommand.
//
// Both expose a Console, the user's side of the terminal. Assertions are
// made against the output produced since a Snapshot:
//
//	h, err := termtest.NewHarness(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer h.Close()
//
//	q := h.Question()
//	q.SetPrompt("name")
//	snap := h.Console().Snapshot()
//	answer := h.Ask(q)
//	err = h.Console().Expect(ctx, snap, termtest.Contains("name"), "prompt")
//	// ...
//	_ = h.Console().SendLine("joey")
//	a := <-answer
package termtest
