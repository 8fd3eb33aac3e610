// Package inputxml declares the raw XML record shapes of the supported report formats.
// Values are kept as text; conversion and validation happen in the parsers.
package inputxml

import "encoding/xml"

// DotCoverRoot is the <Root> element of a dotCover DetailedXml report.
type DotCoverRoot struct {
	XMLName           xml.Name            `xml:"Root"`
	DotCoverVersion   string              `xml:"DotCoverVersion,attr"`
	ReportType        string              `xml:"ReportType,attr"`
	CoveredStatements string              `xml:"CoveredStatements,attr"`
	TotalStatements   string              `xml:"TotalStatements,attr"`
	Files             []DotCoverFileXML   `xml:"File"`
	Assemblies        []DotCoverModuleXML `xml:"Assembly"`
}

// DotCoverFileXML maps a file index to a path.
type DotCoverFileXML struct {
	Index string `xml:"Index,attr"`
	Name  string `xml:"Name,attr"`
}

// DotCoverModuleXML is an <Assembly> element. Types appear either inside namespaces or directly.
type DotCoverModuleXML struct {
	Name       string                 `xml:"Name,attr"`
	Namespaces []DotCoverNamespaceXML `xml:"Namespace"`
	Types      []DotCoverTypeXML      `xml:"Type"`
}

type DotCoverNamespaceXML struct {
	Name  string            `xml:"Name,attr"`
	Types []DotCoverTypeXML `xml:"Type"`
}

// DotCoverTypeXML is a <Type> element. Nested types (compiler generated state machines,
// closures, nested classes) belong to the enclosing type.
type DotCoverTypeXML struct {
	Name    string              `xml:"Name,attr"`
	Methods []DotCoverMethodXML `xml:"Method"`
	Types   []DotCoverTypeXML   `xml:"Type"`
}

// DotCoverMethodXML is a <Method> element. Name carries the signature, e.g. "Add(System.Int32):System.Int32".
type DotCoverMethodXML struct {
	Name       string                 `xml:"Name,attr"`
	Statements []DotCoverStatementXML `xml:"Statement"`
}

type DotCoverStatementXML struct {
	FileIndex string  `xml:"FileIndex,attr"`
	Line      string  `xml:"Line,attr"`
	Column    string  `xml:"Column,attr"`
	EndLine   string  `xml:"EndLine,attr"`
	EndColumn string  `xml:"EndColumn,attr"`
	Covered   *string `xml:"Covered,attr"` // nil when the attribute is absent
}
