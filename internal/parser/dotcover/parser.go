package dotcover

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/filereader"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/inputxml"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/parser"
)

// DotCoverParser implements the parser.IParser interface for dotCover DetailedXml reports.
type DotCoverParser struct{}

// NewDotCoverParser creates a new DotCoverParser.
func NewDotCoverParser() parser.IParser {
	return &DotCoverParser{}
}

func init() {
	parser.RegisterParser(NewDotCoverParser())
}

func (dp *DotCoverParser) Name() string {
	return "DotCover"
}

// SupportsFile checks whether the file is an XML document with a <Root> element that
// looks like dotCover output: a DotCoverVersion attribute, or File/Assembly children.
func (dp *DotCoverParser) SupportsFile(filePath string) bool {
	if !strings.HasSuffix(strings.ToLower(filePath), ".xml") {
		return false
	}
	r, err := filereader.OpenReport(filePath)
	if err != nil {
		return false
	}
	defer r.Close()

	decoder := newDecoder(r)
	sawRoot := false
	for {
		token, err := decoder.Token()
		if err != nil {
			return false
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if !sawRoot {
			if se.Name.Local != "Root" {
				return false
			}
			for _, attr := range se.Attr {
				if attr.Name.Local == "DotCoverVersion" {
					return true
				}
			}
			sawRoot = true
			continue
		}
		return se.Name.Local == "File" || se.Name.Local == "Assembly"
	}
}

// Parse loads the report and builds its coverage model.
func (dp *DotCoverParser) Parse(filePath string, config parser.ParserConfig) (*parser.ParserResult, error) {
	report, err := Load(filePath)
	if err != nil {
		return nil, err
	}

	coverageModel, err := BuildModel(report, config)
	if err != nil {
		return nil, fmt.Errorf("failed to build coverage model from %s: %w", filePath, err)
	}

	var sourceDirs []string
	if config != nil {
		sourceDirs = config.SourceDirectories()
	}
	return &parser.ParserResult{
		Model:                  coverageModel,
		SourceDirectories:      sourceDirs,
		SupportsBranchCoverage: false,
		ParserName:             dp.Name(),
	}, nil
}

// Load reads and decodes a dotCover report file.
func Load(filePath string) (*inputxml.DotCoverRoot, error) {
	r, err := filereader.OpenReport(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dotCover report %s: %w", filePath, err)
	}
	defer r.Close()

	report, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal dotCover report %s: %w", filePath, err)
	}
	return report, nil
}

// Decode decodes a dotCover report from r.
func Decode(r io.Reader) (*inputxml.DotCoverRoot, error) {
	var report inputxml.DotCoverRoot
	if err := newDecoder(r).Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}

func newDecoder(r io.Reader) *xml.Decoder {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charsetReader
	return decoder
}

// charsetReader honours the encoding declared in the XML prolog. UTF-16 input has
// already been converted by filereader.OpenReport, so it is read as is.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(label), "utf-16") {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}
