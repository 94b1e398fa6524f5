package inspect

import "testing"

const sample = `.text

.data
.balign 8
Object_prototype:
  .quad Object_prototype_end - Object_prototype
  .quad 0
  .quad 1
  .quad string_constant_0
  .quad Object_method_table
Object_prototype_end:

.balign 8
Object_method_table:
  .quad Object.abort
  .quad Object.type_name
  .quad Object.copy

.balign 8
String_prototype:
  .quad String_prototype_end - String_prototype
  .quad 0
  .quad 2
  .quad string_constant_1
  .quad String_method_table
  .quad string_data_0
String_prototype_end:

.balign 8
String_method_table:
  .quad String.length
  .quad String.concat

string_constant_0:
  .quad 48
  .quad 0
  .quad 1
  .quad string_constant_2
  .quad String_method_table
  .quad string_data_0

string_data_0:
  .string ""

int_constant_0:
  .quad 48
  .quad 0
  .quad 2
  .quad string_constant_3
  .quad Int_method_table
  .quad 42
`

func TestParseClasses(t *testing.T) {
	a := Parse(sample)
	obj, ok := a.Lookup("Object")
	if !ok || obj.ID != 1 {
		t.Fatalf("expected Object at id 1, got %+v ok=%v", obj, ok)
	}
	str, ok := a.Lookup("String")
	if !ok || str.ID != 2 {
		t.Fatalf("expected String at id 2, got %+v ok=%v", str, ok)
	}
	if len(a.Classes) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(a.Classes))
	}
	if a.Classes[0].Name != "Object" || a.Classes[1].Name != "String" {
		t.Fatalf("expected classes ordered by id, got %+v", a.Classes)
	}
}

func TestParseMethodTables(t *testing.T) {
	a := Parse(sample)
	slots, ok := a.MethodTables["Object"]
	if !ok || len(slots) != 3 {
		t.Fatalf("expected 3 slots for Object, got %+v ok=%v", slots, ok)
	}
	if slots[0].Owner != "Object" || slots[0].Name != "abort" {
		t.Fatalf("unexpected slot 0: %+v", slots[0])
	}
	out, ok := a.FormatMethods("String")
	if !ok {
		t.Fatalf("expected String method table")
	}
	if out == "" {
		t.Fatalf("expected non-empty formatted output")
	}
	if _, ok := a.FormatMethods("Ghost"); ok {
		t.Fatalf("expected no method table for unknown class")
	}
}

func TestParseConstants(t *testing.T) {
	a := Parse(sample)
	if a.Ints[0] != 42 {
		t.Fatalf("expected int_constant_0 == 42, got %d", a.Ints[0])
	}
	if a.Strings[0] != "" {
		t.Fatalf("expected empty string_data_0, got %q", a.Strings[0])
	}
}

func TestFormatClasses(t *testing.T) {
	a := Parse(sample)
	out := a.FormatClasses()
	if out == "" {
		t.Fatalf("expected non-empty class table rendering")
	}
}
