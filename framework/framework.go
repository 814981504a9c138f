// Package framework implements the Framework Knowledge Base (spec
// §4.3): a read-only table of known base-class signatures consulted
// for override detection, inherited field typing, and OpCodes helper
// return types.
//
// Grounded on the teacher's declaration.go, which also consults a
// fixed "known base type" table (its genTypeInterface/constraintExpr
// machinery) when deciding how to type an inherited member; this
// package generalizes that to a data table walked along Extends,
// per the DESIGN NOTES item "Framework knowledge via nested object
// literals... treat it as a parsed config loaded once rather than
// hand-written code": the table below is a plain Go literal assembled
// once in builtinClasses/builtinOpCodes, not logic scattered through
// the transformer.
package framework

import "github.com/hawkynt/il2cs/types"

// Signature is a signature record (spec §3): parameter types, return
// type, optional per-parameter defaults, and whether the entry denotes
// a framework method override.
type Signature struct {
	ParamTypes []types.Type
	ReturnType types.Type
	Defaults   []bool // true at index i means parameter i has a default value
	IsOverride bool
}

// Property is an inherited field or auto-property's declared type.
type Property struct {
	Type types.Type
}

// Class is one entry of the knowledge base: a base class's method and
// property signatures, plus (for crypto framework element types such
// as TestCase) the positional order its generated constructor expects
// (§4.7, "Crypto framework objects").
type Class struct {
	Extends          string
	Methods          map[string]Signature
	Properties       map[string]Property
	ConstructorOrder []string
}

// KnowledgeBase is the read-only, merged class/opcode table for one
// compilation (§3, "read-only for the duration of a compilation").
type KnowledgeBase struct {
	classes map[string]Class
	opcodes map[string]Signature
}

// New builds a KnowledgeBase from the built-in tables merged with
// Config.FrameworkTypes/Config.OpcodesTypes overrides (§6): built-ins
// always win on names they define.
func New(classOverrides map[string]Class, opcodeOverrides map[string]Signature) *KnowledgeBase {
	return &KnowledgeBase{
		classes: MergeClasses(builtinClasses(), classOverrides),
		opcodes: MergeOpcodes(builtinOpCodes(), opcodeOverrides),
	}
}

// MergeClasses implements the total precedence rule for
// Config.FrameworkTypes (SPEC_FULL §4 item 2): every name in builtin
// survives unchanged; names only present in overrides are added.
func MergeClasses(builtin, overrides map[string]Class) map[string]Class {
	merged := make(map[string]Class, len(builtin)+len(overrides))
	for name, cls := range overrides {
		merged[name] = cls
	}
	for name, cls := range builtin {
		merged[name] = cls
	}
	return merged
}

// MergeOpcodes is MergeClasses' counterpart for Config.OpcodesTypes.
func MergeOpcodes(builtin, overrides map[string]Signature) map[string]Signature {
	merged := make(map[string]Signature, len(builtin)+len(overrides))
	for name, sig := range overrides {
		merged[name] = sig
	}
	for name, sig := range builtin {
		merged[name] = sig
	}
	return merged
}

// LookupMethod walks Extends from className until it finds methodName
// or runs out of base classes (§4.3(a)).
func (kb *KnowledgeBase) LookupMethod(className, methodName string) (Signature, bool) {
	for name := className; name != ""; {
		cls, ok := kb.classes[name]
		if !ok {
			return Signature{}, false
		}
		if sig, ok := cls.Methods[methodName]; ok {
			return sig, true
		}
		name = cls.Extends
	}
	return Signature{}, false
}

// LookupProperty walks Extends from className until it finds propName
// or runs out of base classes (§4.3(b), (c)).
func (kb *KnowledgeBase) LookupProperty(className, propName string) (Property, bool) {
	for name := className; name != ""; {
		cls, ok := kb.classes[name]
		if !ok {
			return Property{}, false
		}
		if prop, ok := cls.Properties[propName]; ok {
			return prop, true
		}
		name = cls.Extends
	}
	return Property{}, false
}

// ConstructorOrder returns the declared positional field order for a
// crypto framework element type (TestCase, KeySize, LinkItem,
// Vulnerability), walking Extends if className itself declares none.
func (kb *KnowledgeBase) ConstructorOrder(className string) ([]string, bool) {
	for name := className; name != ""; {
		cls, ok := kb.classes[name]
		if !ok {
			return nil, false
		}
		if len(cls.ConstructorOrder) > 0 {
			return cls.ConstructorOrder, true
		}
		name = cls.Extends
	}
	return nil, false
}

// LookupOpCode returns the declared return/parameter types for an
// OpCodes helper method (§4.5, "Call: OpCodes returns from the
// framework table").
func (kb *KnowledgeBase) LookupOpCode(name string) (Signature, bool) {
	sig, ok := kb.opcodes[name]
	return sig, ok
}

// Class looks up a class entry directly, without walking Extends. Used
// by tests and by transform's override-detection path, which needs the
// class's own Extends value.
func (kb *KnowledgeBase) Class(className string) (Class, bool) {
	cls, ok := kb.classes[className]
	return cls, ok
}

// builtinClasses is the built-in default table (§4.3): the crypto
// test-harness element types named throughout §4.7, plus the base
// algorithm class the host framework exposes for override detection.
func builtinClasses() map[string]Class {
	u32 := types.UInt32
	byteArr := types.Array(types.Byte, false)
	str := types.StringT

	return map[string]Class{
		"CryptoAlgorithm": {
			Methods: map[string]Signature{
				"Encrypt": {ParamTypes: []types.Type{byteArr}, ReturnType: byteArr, IsOverride: true},
				"Decrypt": {ParamTypes: []types.Type{byteArr}, ReturnType: byteArr, IsOverride: true},
			},
			Properties: map[string]Property{
				"BlockSize": {Type: types.Int32},
				"KeySize":   {Type: types.Int32},
				"Name":      {Type: str},
			},
		},
		"TestCase": {
			Properties: map[string]Property{
				"Input":  {Type: byteArr},
				"Output": {Type: byteArr},
				"Key":    {Type: byteArr},
			},
			ConstructorOrder: []string{"Input", "Output", "Key"},
		},
		"KeySize": {
			Properties: map[string]Property{
				"MinSize":  {Type: types.Int32},
				"MaxSize":  {Type: types.Int32},
				"StepSize": {Type: types.Int32},
			},
			ConstructorOrder: []string{"MinSize", "MaxSize", "StepSize"},
		},
		"LinkItem": {
			Properties: map[string]Property{
				"Title": {Type: str},
				"Uri":   {Type: str},
			},
			ConstructorOrder: []string{"Title", "Uri"},
		},
		"Vulnerability": {
			Properties: map[string]Property{
				"Title":       {Type: str},
				"Description": {Type: str},
			},
			ConstructorOrder: []string{"Title", "Description"},
		},
		"RngBase": {
			Extends: "",
			Methods: map[string]Signature{
				"NextUInt32": {ReturnType: u32, IsOverride: true},
			},
		},
	}
}

// builtinOpCodes is the built-in OpCodes helper table (§4.5, §4.7):
// rotation and byte-packing helpers are always unsigned-typed, widths
// named in the helper name.
func builtinOpCodes() map[string]Signature {
	u32, u64 := types.UInt32, types.UInt64

	reg := map[string]Signature{
		"RotL32": {ParamTypes: []types.Type{u32, types.Int32}, ReturnType: u32},
		"RotR32": {ParamTypes: []types.Type{u32, types.Int32}, ReturnType: u32},
		"RotL64": {ParamTypes: []types.Type{u64, types.Int32}, ReturnType: u64},
		"RotR64": {ParamTypes: []types.Type{u64, types.Int32}, ReturnType: u64},
	}
	for _, endian := range []string{"LE", "BE"} {
		reg["Pack16"+endian] = Signature{ReturnType: types.UInt16}
		reg["Pack32"+endian] = Signature{ReturnType: u32}
		reg["Pack64"+endian] = Signature{ReturnType: u64}
		reg["Unpack16"+endian] = Signature{ReturnType: types.Array(types.Byte, false)}
		reg["Unpack32"+endian] = Signature{ReturnType: types.Array(types.Byte, false)}
		reg["Unpack64"+endian] = Signature{ReturnType: types.Array(types.Byte, false)}
	}
	return reg
}
