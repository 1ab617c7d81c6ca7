package export

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/idilsaglam/localtodo/internal/model"
)

var sample = []model.Todo{
	{ID: 1, Name: "milk"},
	{ID: 2, Name: "eggs, free range", IsCompleted: true},
}

func TestRender_JSON(t *testing.T) {
	t.Parallel()

	b, err := Render(sample, "json")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var got []model.Todo
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, sample) {
		t.Fatalf("got %#v", got)
	}

	b, err = Render(nil, "json")
	if err != nil || strings.TrimSpace(string(b)) != "[]" {
		t.Fatalf("nil list: got %q, %v", b, err)
	}
}

func TestRender_CSV(t *testing.T) {
	t.Parallel()

	b, err := Render(sample, "CSV")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "id,name,isCompleted\n1,milk,false\n2,\"eggs, free range\",true\n"
	if string(b) != want {
		t.Fatalf("csv:\n got: %q\nwant: %q", b, want)
	}
}

func TestRender_Markdown(t *testing.T) {
	t.Parallel()

	b, err := Render(sample, "md")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(b)
	for _, want := range []string{"- [ ] milk\n", "- [x] eggs, free range\n", "1 done, 1 pending"} {
		if !strings.Contains(s, want) {
			t.Errorf("markdown missing %q:\n%s", want, s)
		}
	}
	if !strings.Contains(Markdown(nil), "_no items_") {
		t.Errorf("empty markdown: %q", Markdown(nil))
	}
}

func TestRender_PDF(t *testing.T) {
	t.Parallel()

	b, err := Render(sample, "pdf")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("expected PDF header, got %q", b[:min(len(b), 8)])
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	t.Parallel()
	if _, err := Render(sample, "docx"); err == nil {
		t.Fatalf("expected error")
	}
}
