// Package resume2pdf turns a resume data file into HTML and PDF.
//
// # Quick Start
//
// Run the pipeline with the default layout (data/resume.json,
// templates/resume.html.j2, output/):
//
//	gen := resume2pdf.NewGenerator(resume2pdf.Paths{})
//	res, err := gen.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.PDFPath)
//
// # Pipeline
//
// A run goes through these stages, stopping at the first failure:
//
//  1. Load: parse the JSON (or YAML) resume, keeping key order
//  2. Substitute: replace ${NAME} in every string with the environment value
//  3. Render: execute a Jinja-style template (pongo2) with the resume keys
//  4. Write the HTML file
//  5. Convert: print the HTML file with headless Chrome (go-rod or chromedp)
//  6. Write the PDF file
//
// Placeholders with no environment value are left as written. Only string
// values are substituted; keys, numbers, booleans and nulls pass through.
//
// # Templates
//
// Besides the resume keys, templates can use:
//
//	{{ summary|markdown }}          Markdown to sanitized HTML
//	{{ title|markdown_inline }}     same, without the <p> wrapper
//	{{ stylesheet("classic") }}     CSS from <assets>/styles or the built-in styles
//	{{ now|date:"January 2006" }}   time of the run
//
// # Errors
//
// Run returns a *StageError naming the failed stage. Its cause matches one
// of ErrLoad, ErrTemplate, ErrWrite, or ErrConversion with errors.Is:
//
//	var se *resume2pdf.StageError
//	if errors.As(err, &se) && errors.Is(err, resume2pdf.ErrConversion) {
//	    // browser problem; HTML output is still on disk
//	}
//
// # Browser
//
// The default rod backend downloads Chromium on first use unless
// ROD_BROWSER_BIN points at an installed browser. Set ROD_NO_SANDBOX=1 in
// containers. The chromedp backend always uses a local Chrome.
package resume2pdf
