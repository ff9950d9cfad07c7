// internal/extract/specs_test.go
package extract

import "testing"

func TestParseSpecTables(t *testing.T) {
	html := `
<div>
  <p>General</p>
  <table>
    <tr><td>Weight</td><td>2kg</td></tr>
    <tr><td>Colour</td><td>Black</td></tr>
  </table>
  <p>Display</p>
  <table>
    <tr><td>Size</td><td>15.6"</td></tr>
    <tr><td>malformed row</td></tr>
    <tr><td>Resolution</td><td>1920x1080</td><td>extra</td></tr>
  </table>
</div>`

	tables, err := ParseSpecTables(html)
	if err != nil {
		t.Fatalf("ParseSpecTables returned error: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}

	if tables[0].Header != "General" {
		t.Errorf("first table header = %q, want %q", tables[0].Header, "General")
	}
	if len(tables[0].Attributes) != 2 {
		t.Fatalf("first table has %d attributes, want 2", len(tables[0].Attributes))
	}
	if tables[0].Attributes[0].Key != "Weight" || tables[0].Attributes[0].Value != "2kg" {
		t.Errorf("unexpected first attribute: %+v", tables[0].Attributes[0])
	}

	// Rows without exactly two cells are dropped.
	if len(tables[1].Attributes) != 1 {
		t.Errorf("second table has %d attributes, want 1", len(tables[1].Attributes))
	}
}

func TestParseSpecTablesHeaderFallback(t *testing.T) {
	html := `
<div>
  <table><tr><td>Weight</td><td>2kg</td></tr></table>
  <table><tr><td>Size</td><td>Large</td></tr></table>
</div>`

	tables, err := ParseSpecTables(html)
	if err != nil {
		t.Fatalf("ParseSpecTables returned error: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if tables[0].Header != "Table 1" || tables[1].Header != "Table 2" {
		t.Errorf("fallback headers = %q, %q", tables[0].Header, tables[1].Header)
	}
}

func TestParseSpecTablesDropsEmptyTables(t *testing.T) {
	html := `
<div>
  <p>Empty</p>
  <table><tr><td>only one cell</td></tr></table>
  <p>Real</p>
  <table><tr><td>Key</td><td>Value</td></tr></table>
</div>`

	tables, err := ParseSpecTables(html)
	if err != nil {
		t.Fatalf("ParseSpecTables returned error: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if tables[0].Header != "Real" {
		t.Errorf("kept table header = %q, want %q", tables[0].Header, "Real")
	}
}

func TestSpecificationsMarshalSentinel(t *testing.T) {
	specs := Specifications{Sentinel: SentinelNoSpecs}
	data, err := specs.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON returned error: %v", err)
	}
	expected := `{"Specs":"No specifications found"}`
	if string(data) != expected {
		t.Errorf("marshaled sentinel = %s, want %s", data, expected)
	}
}
