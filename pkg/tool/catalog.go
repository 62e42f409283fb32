package tool

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// xmlEndmill mirrors one <endmill> record in the catalog file.
type xmlEndmill struct {
	Number      int     `xml:"number,attr"`
	Type        string  `xml:"type,attr"`
	Diameter    float64 `xml:"diameter,attr"`
	Unit        string  `xml:"unit,attr"`
	Description string  `xml:"description,attr"`
}

// xmlEndmillList is the document root of an endmill catalog.
type xmlEndmillList struct {
	XMLName  xml.Name     `xml:"endmill-list"`
	Endmills []xmlEndmill `xml:"endmill"`
}

// Catalog is an ordered list of endmills keyed by tool number.
type Catalog struct {
	tools []*Tool
}

// LoadCatalog parses an endmill catalog document.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var doc xmlEndmillList
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("tool: parsing endmill catalog: %w", err)
	}

	c := &Catalog{}
	for _, e := range doc.Endmills {
		unit, err := ParseUnit(e.Unit)
		if err != nil {
			return nil, fmt.Errorf("tool: endmill %d: %w", e.Number, err)
		}
		if e.Diameter <= 0 {
			return nil, fmt.Errorf("tool: endmill %d: diameter %g must be positive", e.Number, e.Diameter)
		}
		c.tools = append(c.tools, &Tool{
			Number:      e.Number,
			Diameter:    e.Diameter,
			Unit:        unit,
			Description: e.Description,
		})
	}
	return c, nil
}

// LoadCatalogFile reads an endmill catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tool: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Save writes the catalog back out in the same XML schema it is read
// from.
func (c *Catalog) Save(w io.Writer) error {
	doc := xmlEndmillList{}
	for _, t := range c.tools {
		doc.Endmills = append(doc.Endmills, xmlEndmill{
			Number:      t.Number,
			Type:        "endmill",
			Diameter:    t.Diameter,
			Unit:        t.Unit.String(),
			Description: t.Description,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("tool: writing endmill catalog: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("tool: writing endmill catalog: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("tool: writing endmill catalog: %w", err)
	}
	return nil
}

// Add appends a tool. Duplicate numbers are rejected.
func (c *Catalog) Add(t *Tool) error {
	if found, _ := c.Find(t.Number); found != nil {
		return fmt.Errorf("tool: endmill number %d already in catalog", t.Number)
	}
	c.tools = append(c.tools, t)
	return nil
}

// Find returns the tool with the given number, or an error naming the
// number when it is not in the catalog.
func (c *Catalog) Find(number int) (*Tool, error) {
	for _, t := range c.tools {
		if t.Number == number {
			return t, nil
		}
	}
	return nil, fmt.Errorf("tool: no endmill numbered %d in catalog", number)
}

// FindByDiameter returns the first tool whose working-unit diameter is
// within tol millimeters of d.
func (c *Catalog) FindByDiameter(d, tol float64) (*Tool, error) {
	for _, t := range c.tools {
		diff := t.DiameterMM() - d
		if diff < 0 {
			diff = -diff
		}
		if diff <= tol {
			return t, nil
		}
	}
	return nil, fmt.Errorf("tool: no endmill with diameter %g mm in catalog", d)
}

// Tools returns the catalog contents in file order.
func (c *Catalog) Tools() []*Tool {
	return c.tools
}

// Len returns the number of endmills in the catalog.
func (c *Catalog) Len() int {
	return len(c.tools)
}
