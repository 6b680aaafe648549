// Package report collects check results into a document and writes it as
// JSON, YAML or an aligned text table.
//
//	r := report.New()
//	vs, err := engine.Validate(value, decl)
//	r.Add(report.NewResult("username", p, decl.Kind, vs, err))
//	if err := report.Write(os.Stdout, report.FormatText, r); err != nil {
//		return err
//	}
package report
