/*
Package operation turns dotenv templates into generated files.

	+-------------+
	|   Runner    |
	|  (Batch)    |
	+------+------+
	       |
	+------+------+
	| Transformer |
	| (per file)  |
	+------+------+
	       |
	+------+------+     +-------------+
	|  Rewriter   |     | FileManager |
	|  (envfile)  |     |  (status)   |
	+-------------+     +-------------+

🎯 Purpose:
- Derives the output path next to every template
- Skips templates whose output exists unless forced
- Rewrites credential settings and writes the result atomically
- Turns every I/O failure into an error outcome instead of an error

🔄 Flow:
1. Runner receives the discovered template paths
2. Transformer checks the output, reads, rewrites and writes
3. Each outcome is handed to the status.Reporter as soon as it exists
4. Runner folds outcomes into a status.Summary

Templates are processed strictly one at a time. A write failure leaves
outputs already written by earlier templates in place.

🔍 Example:

	rewriter := envfile.NewRewriter(cfg.Classifier(), gen)
	t := operation.NewTransformer(status.NewManager(mode), rewriter, ".env", nil)
	runner := operation.NewRunner(t, reporter)

	summary, err := runner.Run(ctx, root, paths, operation.Options{DryRun: true})
*/
package operation
