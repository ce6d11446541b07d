// Package proposalpdf renders commercial proposals to paginated PDF
// documents with a hand-rolled layout engine on top of gofpdf.
//
// # Rendering
//
// Create a [Generator] once and reuse it; it is safe for concurrent use:
//
//	g := proposalpdf.New(
//	    proposalpdf.WithLogger(logger),
//	    proposalpdf.WithHeaderLoader(proposalpdf.FileAsset("header.png")),
//	)
//
//	res, err := g.Render(ctx, doc, &proposalpdf.RenderOptions{Preview: true})
//
// The input is a normalized [proposal.Document]. The layout flows the title,
// event data, the service, supply and optional item tables with their
// subtotal banners, the grand total, general conditions, contracting policy,
// supplier data and the acceptance band, breaking pages before any block
// that would cross the bottom margin. Every page carries the running header
// image and a "Página i de N" footer.
//
// Use [PageConfig] to control paper size, orientation and margins:
//
//	g := proposalpdf.New(proposalpdf.WithPageConfig(proposalpdf.PageConfig{
//	    Size:       proposalpdf.A4,
//	    SideMargin: 15,
//	}))
//
// # Results
//
// A [Result] gives flexible access to the generated PDF bytes:
//
//	res.Bytes()                       // []byte
//	res.Base64()                      // base64 string (RFC 4648)
//	res.Reader()                      // *bytes.Reader
//	res.WriteTo(w)                    // io.WriterTo
//	res.WriteToFile("out.pdf", 0o644) // write to disk
//	res.Save(dir)                     // write to dir under res.FileName()
//	res.PageCount()                   // number of pages
//
// Without Preview and with a Dir, Render saves the document itself:
//
//	res, err := g.Render(ctx, doc, &proposalpdf.RenderOptions{Dir: "out"})
//	fmt.Println(res.Path()) // out/10032025_Corporativo_Acme_Campinas.pdf
//
// # Header assets
//
// The header image comes from an [AssetLoader]: [FileAsset], [URLAsset],
// [BytesAsset] or any [AssetLoaderFunc]. It is resolved before drawing
// starts; when it cannot be loaded the proposal renders without a header
// and a warning is logged.
//
// # Errors
//
// Render returns [ErrNilDocument] for a nil document. Any failure during
// layout or encoding, including a recovered panic, is wrapped in
// [ErrRender] with the cause preserved, and no partial result is returned.
package proposalpdf
