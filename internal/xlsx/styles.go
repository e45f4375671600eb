package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// ColorRef is a fill color as authored in the workbook: either a direct
// RGB/ARGB string, a legacy indexed palette slot, or a theme slot with an
// optional tint. Exactly one of RGB/Theme/Indexed is normally set.
type ColorRef struct {
	RGB     string
	Theme   *int
	Tint    float64
	Indexed *int
}

// IsZero reports whether the reference carries no color information.
func (c *ColorRef) IsZero() bool {
	return c == nil || (c.RGB == "" && c.Theme == nil && c.Indexed == nil)
}

// fillRefs is one entry of the styles.xml fills table.
type fillRefs struct {
	patternType string
	fg          *ColorRef
	bg          *ColorRef
}

// styleIndex maps a cell style ID to its pattern-fill color references.
// excelize exposes cell style IDs but not the raw fill color references
// (theme slot, tint, indexed), so those are read from xl/styles.xml
// directly.
type styleIndex struct {
	fills  []fillRefs
	xfFill []int // style ID -> fill table index
}

type xlsxStyleSheet struct {
	Fills struct {
		Fill []struct {
			PatternFill *struct {
				PatternType string     `xml:"patternType,attr"`
				FgColor     *xlsxColor `xml:"fgColor"`
				BgColor     *xlsxColor `xml:"bgColor"`
			} `xml:"patternFill"`
		} `xml:"fill"`
	} `xml:"fills"`
	CellXfs struct {
		Xf []struct {
			FillID *int `xml:"fillId,attr"`
		} `xml:"xf"`
	} `xml:"cellXfs"`
}

type xlsxColor struct {
	RGB     string  `xml:"rgb,attr"`
	Theme   *int    `xml:"theme,attr"`
	Tint    float64 `xml:"tint,attr"`
	Indexed *int    `xml:"indexed,attr"`
}

func (c *xlsxColor) ref() *ColorRef {
	if c == nil {
		return nil
	}
	ref := &ColorRef{
		RGB:     strings.ToUpper(strings.TrimSpace(c.RGB)),
		Theme:   c.Theme,
		Tint:    c.Tint,
		Indexed: c.Indexed,
	}
	if ref.IsZero() {
		return nil
	}
	return ref
}

func parseStyleIndex(data []byte) (*styleIndex, error) {
	var sheet xlsxStyleSheet
	if err := xml.Unmarshal(data, &sheet); err != nil {
		return nil, err
	}

	idx := &styleIndex{
		fills:  make([]fillRefs, 0, len(sheet.Fills.Fill)),
		xfFill: make([]int, 0, len(sheet.CellXfs.Xf)),
	}

	for _, f := range sheet.Fills.Fill {
		entry := fillRefs{}
		if pf := f.PatternFill; pf != nil {
			entry.patternType = pf.PatternType
			entry.fg = pf.FgColor.ref()
			entry.bg = pf.BgColor.ref()
		}
		idx.fills = append(idx.fills, entry)
	}

	for _, xf := range sheet.CellXfs.Xf {
		fillID := 0
		if xf.FillID != nil {
			fillID = *xf.FillID
		}
		idx.xfFill = append(idx.xfFill, fillID)
	}

	return idx, nil
}

// lookup returns the fg/bg color references for a cell style ID, or nils
// when the style has no visible pattern fill.
func (s *styleIndex) lookup(styleID int) (fg, bg *ColorRef) {
	if s == nil || styleID < 0 || styleID >= len(s.xfFill) {
		return nil, nil
	}
	fillID := s.xfFill[styleID]
	if fillID < 0 || fillID >= len(s.fills) {
		return nil, nil
	}
	fill := s.fills[fillID]
	if fill.patternType == "" || fill.patternType == "none" {
		return nil, nil
	}
	return fill.fg, fill.bg
}

// readContainerParts pulls styles.xml and the theme part out of the raw
// xlsx container. A workbook without either part is still usable; the
// callers fall back to defaults.
func readContainerParts(raw []byte) (styles *styleIndex, themeXML string) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, ""
	}

	for _, file := range zr.File {
		switch {
		case file.Name == "xl/styles.xml":
			if data := readZipFile(file); data != nil {
				if idx, err := parseStyleIndex(data); err == nil {
					styles = idx
				}
			}
		case strings.HasPrefix(file.Name, "xl/theme/") && strings.HasSuffix(file.Name, ".xml"):
			if themeXML != "" {
				continue
			}
			if data := readZipFile(file); data != nil {
				themeXML = string(data)
			}
		}
	}
	return styles, themeXML
}

func readZipFile(file *zip.File) []byte {
	rc, err := file.Open()
	if err != nil {
		return nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil
	}
	return data
}
