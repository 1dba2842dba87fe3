package schemafile

import "gopkg.in/yaml.v3"

// fileDoc is the top-level document of a schema file. A file holds either
// one module (module + definitions) or a list of modules.
type fileDoc struct {
	Module      string      `yaml:"module"`
	Definitions []defDoc    `yaml:"definitions"`
	Modules     []moduleDoc `yaml:"modules"`
}

type moduleDoc struct {
	Module      string   `yaml:"module"`
	Definitions []defDoc `yaml:"definitions"`
}

// defDoc is one definition. Exactly one of Enum, Message, Exception or
// Interface names it.
type defDoc struct {
	Enum      string `yaml:"enum"`
	Message   string `yaml:"message"`
	Exception string `yaml:"exception"`
	Interface string `yaml:"interface"`

	// Enum
	Values []string `yaml:"values"`

	// Message and exception
	Base               string     `yaml:"base"`
	DiscriminatorValue string     `yaml:"discriminator_value"`
	Fields             []fieldDoc `yaml:"fields"`

	// Interface
	Exc     string      `yaml:"exc"`
	Methods []methodDoc `yaml:"methods"`

	line int
}

func (d *defDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain defDoc
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.line = n.Line
	return nil
}

type fieldDoc struct {
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	Discriminator bool   `yaml:"discriminator"`

	line int
}

func (f *fieldDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain fieldDoc
	if err := n.Decode((*plain)(f)); err != nil {
		return err
	}
	f.line = n.Line
	return nil
}

type methodDoc struct {
	Name   string   `yaml:"name"`
	Result string   `yaml:"result"`
	Post   bool     `yaml:"post"`
	Args   []argDoc `yaml:"args"`

	line int
}

func (m *methodDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain methodDoc
	if err := n.Decode((*plain)(m)); err != nil {
		return err
	}
	m.line = n.Line
	return nil
}

type argDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// kindAndName returns the definition kind keyword and name.
func (d *defDoc) kindAndName() (kind, name string, count int) {
	for _, c := range []struct{ kind, name string }{
		{"enum", d.Enum},
		{"message", d.Message},
		{"exception", d.Exception},
		{"interface", d.Interface},
	} {
		if c.name != "" {
			if count == 0 {
				kind, name = c.kind, c.name
			}
			count++
		}
	}
	return kind, name, count
}
