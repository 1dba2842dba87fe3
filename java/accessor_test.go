package java

import "testing"

func TestAccessorNames(t *testing.T) {
	tests := []struct {
		field  string
		getter string
		setter string
		has    string
		clear  string
	}{
		{"field", "getField", "setField", "hasField", "clearField"},
		{"Field", "getField", "setField", "hasField", "clearField"},
		{"my_field", "getMy_field", "setMy_field", "hasMy_field", "clearMy_field"},
		{"x", "getX", "setX", "hasX", "clearX"},
		{"ёлка", "getЁлка", "setЁлка", "hasЁлка", "clearЁлка"},
		{"", "get", "set", "has", "clear"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := GetterName(tt.field); got != tt.getter {
				t.Errorf("GetterName() = %q, want %q", got, tt.getter)
			}
			if got := SetterName(tt.field); got != tt.setter {
				t.Errorf("SetterName() = %q, want %q", got, tt.setter)
			}
			if got := HasName(tt.field); got != tt.has {
				t.Errorf("HasName() = %q, want %q", got, tt.has)
			}
			if got := ClearName(tt.field); got != tt.clear {
				t.Errorf("ClearName() = %q, want %q", got, tt.clear)
			}
		})
	}
}

func TestUpperFirst_InvalidUTF8(t *testing.T) {
	in := "\xffield"
	if got := upperFirst(in); got != in {
		t.Errorf("upperFirst() = %q, want %q", got, in)
	}
}
