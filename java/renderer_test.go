package java

import (
	"errors"
	"strings"
	"testing"

	"github.com/broady/idlgen/internal/testutil"
	"github.com/broady/idlgen/lang"
	"github.com/broady/idlgen/namespace"
)

// recordingEngine captures the last template call.
type recordingEngine struct {
	id   string
	data any
	err  error
}

func (e *recordingEngine) Render(id string, data any) (string, error) {
	e.id = id
	e.data = data
	if e.err != nil {
		return "", e.err
	}
	return "rendered " + id, nil
}

// unknownDefinition is a definition kind the renderer has no template for.
type unknownDefinition struct {
	*lang.Enum
}

func newTestRenderer(t *testing.T, ns *namespace.Mapper, opts ...RendererOption) *Renderer {
	t.Helper()
	opts = append([]RendererOption{WithGeneratedBy("Generated by test. DO NOT EDIT.")}, opts...)
	r, err := NewRenderer(ns, opts...)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

// polymorphicModule builds the message hierarchy used by several tests:
// Base has discriminator "type", Message extends Base for Type.SUBTYPE.
func polymorphicModule() (*lang.Enum, *lang.Message, *lang.Message) {
	enum := lang.NewEnum("Type")
	subtype := enum.AddValue("SUBTYPE")

	base := lang.NewMessage("Base")
	base.AddDiscriminator("type", enum)

	msg := lang.NewMessage("Message")
	msg.SetBase(base, subtype)
	msg.AddField("field", lang.Bool)

	lang.NewModule("test.module", enum, base, msg)
	return enum, base, msg
}

func TestRender_Dispatch(t *testing.T) {
	enum := lang.NewEnum("Number", "ONE")
	msg := lang.NewMessage("Message")
	iface := lang.NewInterface("Interface", nil)
	lang.NewModule("test.module", enum, msg, iface)

	tests := []struct {
		def    lang.Definition
		wantID string
	}{
		{enum, EnumTemplate},
		{msg, MessageTemplate},
		{iface, InterfaceTemplate},
	}
	for _, tt := range tests {
		t.Run(tt.def.Identifier(), func(t *testing.T) {
			engine := &recordingEngine{}
			r := newTestRenderer(t, nil, WithEngine(engine))
			got, err := r.Render(tt.def)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if engine.id != tt.wantID {
				t.Errorf("template id = %q, want %q", engine.id, tt.wantID)
			}
			if got != "rendered "+tt.wantID {
				t.Errorf("Render() = %q, want %q", got, "rendered "+tt.wantID)
			}
		})
	}
}

func TestRender_UnsupportedDefinition(t *testing.T) {
	engine := &recordingEngine{}
	r := newTestRenderer(t, nil, WithEngine(engine))

	def := unknownDefinition{lang.NewEnum("Odd")}
	out, err := r.Render(def)
	if !errors.Is(err, ErrUnsupportedDefinition) {
		t.Fatalf("Render() error = %v, want ErrUnsupportedDefinition", err)
	}
	if out != "" {
		t.Errorf("Render() = %q, want empty", out)
	}
	if engine.id != "" {
		t.Errorf("engine called with %q, want no call", engine.id)
	}
}

func TestRender_EngineError(t *testing.T) {
	boom := errors.New("boom")
	r := newTestRenderer(t, nil, WithEngine(&recordingEngine{err: boom}))
	enum := lang.NewEnum("Number")
	lang.NewModule("m", enum)

	if _, err := r.Render(enum); !errors.Is(err, boom) {
		t.Errorf("Render() error = %v, want %v", err, boom)
	}
}

func TestEnumContext(t *testing.T) {
	enum := lang.NewEnum("Number", "ONE", "TWO")
	lang.NewModule("test.module", enum)

	ns := namespace.New(map[string]string{"test": "com.corp.test"})
	ctx := newTestRenderer(t, ns).EnumContext(enum)

	if ctx.Package != "com.corp.test.module" {
		t.Errorf("Package = %q, want %q", ctx.Package, "com.corp.test.module")
	}
	if ctx.Name != "Number" {
		t.Errorf("Name = %q, want %q", ctx.Name, "Number")
	}
	if strings.Join(ctx.Values, ",") != "ONE,TWO" {
		t.Errorf("Values = %v, want [ONE TWO]", ctx.Values)
	}
	if ctx.GeneratedBy != "Generated by test. DO NOT EDIT." {
		t.Errorf("GeneratedBy = %q", ctx.GeneratedBy)
	}
}

func TestMessageContext_Polymorphic(t *testing.T) {
	_, base, msg := polymorphicModule()
	r := newTestRenderer(t, nil)

	t.Run("subtype", func(t *testing.T) {
		ctx, err := r.MessageContext(msg)
		if err != nil {
			t.Fatalf("MessageContext() error = %v", err)
		}
		if ctx.Base != "test.module.Base" {
			t.Errorf("Base = %q, want %q", ctx.Base, "test.module.Base")
		}
		if ctx.BaseRef == nil || ctx.BaseRef.Descriptor != "test.module.Base.DESCRIPTOR" {
			t.Errorf("BaseRef = %+v, want descriptor test.module.Base.DESCRIPTOR", ctx.BaseRef)
		}
		if len(ctx.Fields) != 1 {
			t.Fatalf("Fields = %d, want 1 (declared only)", len(ctx.Fields))
		}
		f := ctx.Fields[0]
		if f.Getter != "getField" || f.Setter != "setField" || f.Has != "hasField" || f.Clear != "clearField" {
			t.Errorf("accessors = %s/%s/%s/%s", f.Getter, f.Setter, f.Has, f.Clear)
		}
		if f.Type.Name != "Boolean" {
			t.Errorf("field type = %q, want %q", f.Type.Name, "Boolean")
		}
		if ctx.Discriminator == nil {
			t.Fatal("Discriminator = nil, want inherited discriminator")
		}
		if ctx.Discriminator.Field != "type" {
			t.Errorf("Discriminator.Field = %q, want %q", ctx.Discriminator.Field, "type")
		}
		if ctx.Discriminator.Value == nil || ctx.Discriminator.Value.Name != "test.module.Type.SUBTYPE" {
			t.Errorf("Discriminator.Value = %+v, want test.module.Type.SUBTYPE", ctx.Discriminator.Value)
		}
	})

	t.Run("root", func(t *testing.T) {
		ctx, err := r.MessageContext(base)
		if err != nil {
			t.Fatalf("MessageContext() error = %v", err)
		}
		if ctx.Base != "io.pdef.AbstractMessage" {
			t.Errorf("Base = %q, want %q", ctx.Base, "io.pdef.AbstractMessage")
		}
		if ctx.BaseRef != nil {
			t.Errorf("BaseRef = %+v, want nil", ctx.BaseRef)
		}
		if ctx.Discriminator == nil || ctx.Discriminator.Value != nil {
			t.Errorf("Discriminator = %+v, want field without value", ctx.Discriminator)
		}
		if !ctx.Fields[0].IsDiscriminator {
			t.Error("Fields[0].IsDiscriminator = false, want true")
		}
		if len(ctx.Subtypes) != 1 || ctx.Subtypes[0].Name != "test.module.Message" {
			t.Errorf("Subtypes = %+v, want [test.module.Message]", ctx.Subtypes)
		}
	})
}

func TestMessageContext_Exception(t *testing.T) {
	exc := lang.NewException("Failure")
	exc.AddField("text", lang.String)
	lang.NewModule("test.module", exc)

	ctx, err := newTestRenderer(t, nil).MessageContext(exc)
	if err != nil {
		t.Fatalf("MessageContext() error = %v", err)
	}
	if !ctx.IsException {
		t.Error("IsException = false, want true")
	}
	if ctx.Base != "io.pdef.AbstractException" {
		t.Errorf("Base = %q, want %q", ctx.Base, "io.pdef.AbstractException")
	}
	if ctx.Discriminator != nil {
		t.Errorf("Discriminator = %+v, want nil", ctx.Discriminator)
	}
}

func TestMessageContext_UnsupportedField(t *testing.T) {
	msg := lang.NewMessage("Bad")
	msg.AddField("broken", lang.NativeType(999))
	lang.NewModule("m", msg)

	_, err := newTestRenderer(t, nil).MessageContext(msg)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("MessageContext() error = %v, want ErrUnsupportedType", err)
	}
}

func TestInterfaceContext(t *testing.T) {
	exc := lang.NewException("Exception")
	iface := lang.NewInterface("Interface", exc)
	iface.AddMethod("method0", lang.Int32, lang.Arg{Name: "arg", Type: lang.Int32})
	post := iface.AddMethod("method1", lang.String, lang.Arg{Name: "name", Type: lang.String})
	post.IsPost = true
	iface.AddMethod("child", iface)
	lang.NewModule("test.module", exc, iface)

	ctx, err := newTestRenderer(t, nil).InterfaceContext(iface)
	if err != nil {
		t.Fatalf("InterfaceContext() error = %v", err)
	}
	if ctx.Exc == nil || ctx.Exc.Name != "test.module.Exception" {
		t.Errorf("Exc = %+v, want test.module.Exception", ctx.Exc)
	}
	if len(ctx.Methods) != 3 {
		t.Fatalf("Methods = %d, want 3", len(ctx.Methods))
	}

	m0 := ctx.Methods[0]
	if m0.Unboxed != "int" || m0.Result.Name != "Integer" {
		t.Errorf("method0 result = %q/%q, want int/Integer", m0.Unboxed, m0.Result.Name)
	}
	if len(m0.Args) != 1 || m0.Args[0].Name != "arg" || m0.Args[0].Type.Name != "Integer" {
		t.Errorf("method0 args = %+v", m0.Args)
	}
	if !m0.IsTerminal || m0.IsPost {
		t.Errorf("method0 terminal/post = %v/%v, want true/false", m0.IsTerminal, m0.IsPost)
	}
	if !ctx.Methods[1].IsPost {
		t.Error("method1 IsPost = false, want true")
	}
	if ctx.Methods[2].IsTerminal {
		t.Error("child IsTerminal = true, want false")
	}
}

func TestInterfaceContext_NoException(t *testing.T) {
	iface := lang.NewInterface("Service", nil)
	lang.NewModule("m", iface)

	ctx, err := newTestRenderer(t, nil).InterfaceContext(iface)
	if err != nil {
		t.Fatalf("InterfaceContext() error = %v", err)
	}
	if ctx.Exc != nil {
		t.Errorf("Exc = %+v, want nil", ctx.Exc)
	}
}

func TestRender_EnumTemplate(t *testing.T) {
	enum := lang.NewEnum("Number", "ONE", "TWO")
	lang.NewModule("test.module", enum)

	got, err := newTestRenderer(t, nil).Render(enum)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := `// Generated by test. DO NOT EDIT.
package test.module;

public enum Number {
	ONE,
	TWO;

	public static final io.pdef.descriptors.EnumDescriptor<Number> DESCRIPTOR =
			io.pdef.descriptors.EnumDescriptor.of(Number.class);
}
`
	testutil.ExpectNoDiff(t, want, got)
}

func TestRender_MessageTemplate(t *testing.T) {
	_, base, msg := polymorphicModule()
	r := newTestRenderer(t, nil)

	got, err := r.Render(msg)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{
		"// Generated by test. DO NOT EDIT.\npackage test.module;\n",
		"public class Message extends test.module.Base {",
		"private Boolean field;",
		"setType(test.module.Type.SUBTYPE);",
		"public Boolean getField() {",
		"return field != null ? field : false;",
		"public Message setField(final Boolean value) {",
		"public boolean hasField() {",
		"public Message clearField() {",
		".setBase(test.module.Base.DESCRIPTOR)",
		".setDiscriminatorValue(test.module.Type.SUBTYPE)",
		`.setName("field")`,
		".setType(io.pdef.descriptors.Descriptors.bool)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render(Message) missing %q\n%s", want, got)
		}
	}

	got, err = r.Render(base)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{
		"public class Base extends io.pdef.AbstractMessage {",
		".setDiscriminator(true)",
		"return test.module.Message.DESCRIPTOR;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render(Base) missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "setDiscriminatorValue") {
		t.Errorf("Render(Base) sets a discriminator value on the root\n%s", got)
	}
}

func TestRender_MessageCollectionGetter(t *testing.T) {
	msg := lang.NewMessage("Holder")
	msg.AddField("items", lang.NewList(lang.Int32))
	lang.NewModule("m", msg)

	got, err := newTestRenderer(t, nil).Render(msg)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(got, "items = new java.util.ArrayList<Integer>();") {
		t.Errorf("Render() does not initialize collection field lazily\n%s", got)
	}
}

func TestRender_InterfaceTemplate(t *testing.T) {
	exc := lang.NewException("Exception")
	iface := lang.NewInterface("Interface", exc)
	iface.AddMethod("method0", lang.Int32, lang.Arg{Name: "arg", Type: lang.Int32})
	iface.AddMethod("method1", lang.String,
		lang.Arg{Name: "name", Type: lang.String},
		lang.Arg{Name: "count", Type: lang.Int64})
	iface.AddMethod("nested", iface)
	lang.NewModule("test.module", exc, iface)

	got, err := newTestRenderer(t, nil).Render(iface)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{
		"public interface Interface {",
		"int method0(final Integer arg);",
		"String method1(final String name, final Long count);",
		"test.module.Interface nested();",
		".setExc(test.module.Exception.DESCRIPTOR)",
		".setResult(io.pdef.descriptors.Descriptors.int32)",
		".setInterfaceResult(test.module.Interface.class)",
		`.addArg("count", io.pdef.descriptors.Descriptors.int64, false, false)`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render(Interface) missing %q\n%s", want, got)
		}
	}
}

func TestRender_NoPackage(t *testing.T) {
	enum := lang.NewEnum("Flat", "A")
	lang.NewModule("", enum)

	got, err := newTestRenderer(t, nil).Render(enum)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(got, "package ") {
		t.Errorf("Render() emitted a package declaration for the default package\n%s", got)
	}
}

func TestNewRenderer_DefaultProvenance(t *testing.T) {
	r, err := NewRenderer(nil)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	enum := lang.NewEnum("E")
	lang.NewModule("m", enum)
	got := r.EnumContext(enum).GeneratedBy
	if !strings.HasPrefix(got, "Generated by idlgen ") || !strings.HasSuffix(got, ". DO NOT EDIT.") {
		t.Errorf("GeneratedBy = %q", got)
	}
}
