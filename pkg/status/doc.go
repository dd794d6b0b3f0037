/*
Package status holds the result model of an envgen run and the file system
access used to produce it.

	            +-------------+
	            |   Status    |
	            +------+------+
	                   |
	      +------------+------------+
	      |                         |
	+-----+------+           +------+------+
	|  Outcomes  |           |    Files    |
	| (Summary)  |           |  (Manager)  |
	+-----+------+           +-------------+
	      |
	+-----+------+
	|  Reporter  |
	|  (UI/UX)   |
	+------------+

🎯 Purpose:
- One Outcome per template: success, skipped or error
- Summary counts and the process exit signal
- Atomic, permission-aware writes of generated files
- A Reporter interface so rendering stays out of the processing code

🔄 Flow:
1. operation builds an Outcome for each template
2. the Reporter renders it as soon as it is available
3. Summarize folds all outcomes into a Summary
4. Summary.ExitCode decides the process exit status

🔍 Example:

	mgr := status.NewManager(status.DefaultFileMode)
	if err := mgr.WriteFileAtomic(ctx, "/srv/app/.env", content); err != nil {
		return err
	}

	summary := status.Summarize(outcomes, false)
	os.Exit(summary.ExitCode())
*/
package status
