/*
Package runner executes compiled operation sequences against a machine.

It is the bridge between the core state model and the outside world:
it drives Machine.Execute over a pattern, reports progress through
pluggable hooks, and optionally checkpoints the machine state to a
SnapshotStore so long patterns survive process restarts.

# Usage

	r := runner.New(
		runner.WithLogger(logger),
		runner.WithHooks(collector.Hooks()),
	)

	report, err := r.Run(ctx, m, pattern.Ops)
	if err != nil {
		log.Fatal(err)
	}
*/
package runner
