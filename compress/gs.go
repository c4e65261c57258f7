package compress

// ghostscriptBin is the Ghostscript binary expected on the search path.
const ghostscriptBin = "gs"

// ghostscriptArgs builds the fixed /screen quality invocation used for PDFs.
func ghostscriptArgs(inputPath, outputPath string) []string {
	return []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		"-dPDFSETTINGS=/screen",
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-sOutputFile=" + outputPath,
		inputPath,
	}
}
