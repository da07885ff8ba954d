// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass macro assembler for CHIP-8 programs.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]uint16   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expansions int // Count of macro expansions, for unique '@' labels.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// argKind classifies an instruction operand.
type argKind int

const (
	ARG_VALUE = argKind(iota) // Number or label.
	ARG_REG                   // V0 through VF.
	ARG_V0                    // V0 only, for 'jp V0, addr'.
	ARG_I                     // I
	ARG_MEM_I                 // [I]
	ARG_DT                    // DT
	ARG_ST                    // ST
	ARG_K                     // K
	ARG_F                     // F
	ARG_B                     // B
)

// argMap maps the fixed operand names.
var argMap = map[string]argKind{
	"I":   ARG_I,
	"[I]": ARG_MEM_I,
	"DT":  ARG_DT,
	"ST":  ARG_ST,
	"K":   ARG_K,
	"F":   ARG_F,
	"B":   ARG_B,
}

type operand struct {
	kind argKind
	reg  uint8
	word string
}

// form is one encoding of a mnemonic.
//
// Each layout character places the operand at the same position:
//
//	x   register into X
//	y   register into Y
//	b   byte into NN
//	n   nibble into N
//	a   address or label into NNN
//	-   fixed operand, not encoded
type form struct {
	args   []argKind
	layout string
	code   Code
}

var (
	argsX   = []argKind{ARG_REG}
	argsXY  = []argKind{ARG_REG, ARG_REG}
	argsXNN = []argKind{ARG_REG, ARG_VALUE}
	argsNNN = []argKind{ARG_VALUE}
)

// mnemonicMap maps each mnemonic to its encodings.
var mnemonicMap = map[string][]form{
	"cls":  {{nil, "", 0x00e0}},
	"ret":  {{nil, "", 0x00ee}},
	"jp":   {{argsNNN, "a", 0x1000}, {[]argKind{ARG_V0, ARG_VALUE}, "-a", 0xb000}},
	"call": {{argsNNN, "a", 0x2000}},
	"se":   {{argsXNN, "xb", 0x3000}, {argsXY, "xy", 0x5000}},
	"sne":  {{argsXNN, "xb", 0x4000}, {argsXY, "xy", 0x9000}},
	"ld": {
		{argsXNN, "xb", 0x6000},
		{argsXY, "xy", 0x8000},
		{[]argKind{ARG_I, ARG_VALUE}, "-a", 0xa000},
		{[]argKind{ARG_REG, ARG_DT}, "x-", 0xf007},
		{[]argKind{ARG_REG, ARG_K}, "x-", 0xf00a},
		{[]argKind{ARG_DT, ARG_REG}, "-x", 0xf015},
		{[]argKind{ARG_ST, ARG_REG}, "-x", 0xf018},
		{[]argKind{ARG_F, ARG_REG}, "-x", 0xf029},
		{[]argKind{ARG_B, ARG_REG}, "-x", 0xf033},
		{[]argKind{ARG_MEM_I, ARG_REG}, "-x", 0xf055},
		{[]argKind{ARG_REG, ARG_MEM_I}, "x-", 0xf065},
	},
	"add": {
		{argsXNN, "xb", 0x7000},
		{argsXY, "xy", 0x8004},
		{[]argKind{ARG_I, ARG_REG}, "-x", 0xf01e},
	},
	"or":   {{argsXY, "xy", 0x8001}},
	"and":  {{argsXY, "xy", 0x8002}},
	"xor":  {{argsXY, "xy", 0x8003}},
	"sub":  {{argsXY, "xy", 0x8005}},
	"shr":  {{argsX, "x", 0x8006}, {argsXY, "xy", 0x8006}},
	"subn": {{argsXY, "xy", 0x8007}},
	"shl":  {{argsX, "x", 0x800e}, {argsXY, "xy", 0x800e}},
	"rnd":  {{argsXNN, "xb", 0xc000}},
	"drw":  {{[]argKind{ARG_REG, ARG_REG, ARG_VALUE}, "xyn", 0xd000}},
	"skp":  {{argsX, "x", 0xe09e}},
	"sknp": {{argsX, "x", 0xe0a1}},
}

var (
	reLabel      = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// operandOf classifies a single operand word.
func operandOf(word string) (op operand) {
	op.word = word

	kind, ok := argMap[strings.ToUpper(word)]
	if ok {
		op.kind = kind
		return
	}

	if len(word) == 2 && (word[0] == 'V' || word[0] == 'v') {
		reg, err := strconv.ParseUint(word[1:], 16, 4)
		if err == nil {
			op.kind = ARG_REG
			op.reg = uint8(reg)
			return
		}
	}

	op.kind = ARG_VALUE
	return
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}

	text := word
	if strings.HasPrefix(text, "$") {
		text = "0x" + text[1:]
	}

	value, err = strconv.ParseInt(text, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// rangeOf returns the value of a word, checked against [low, high].
func (asm *Assembler) rangeOf(word string, low, high int64) (value int64, err error) {
	value, err = asm.valueOf(word)
	if err != nil {
		return
	}

	if value < low || value > high {
		err = ErrValueRange
		return
	}

	return
}

// addressOf returns the address a word refers to, or the label to link.
func (asm *Assembler) addressOf(word string) (addr uint16, label string, err error) {
	value, err := asm.rangeOf(word, 0, ADDRESS_MASK)
	if err == nil {
		addr = uint16(value)
		return
	}

	if errors.Is(err, ErrValueRange) || !reLabel.MatchString(word) {
		return
	}

	label = word
	err = nil
	return
}

// stripComment removes a ';' comment, ignoring any ';' in quotes.
func stripComment(text string) string {
	var quote byte
	for n := 0; n < len(text); n++ {
		ch := text[n]
		switch {
		case quote != 0 && ch == '\\':
			n++
		case quote != 0 && ch == quote:
			quote = 0
		case quote != 0:
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == ';':
			return text[:n]
		}
	}

	return text
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int64
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	err = nil
	for key, addr := range asm.Label {
		if !reIdentifier.MatchString(key) {
			continue
		}
		pred[key] = starlark.MakeInt(int(addr))
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.ReplaceAll(line, ",", " "))

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrLabelInvalid(label)
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint16, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansions++
		unique := fmt.Sprintf("%v_%v_", name, asm.expansions)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", unique)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentAddr gets the address of the next opcode.
func (asm *Assembler) currentAddr() uint16 {
	if len(asm.Opcode) == 0 {
		return PROGRAM_START
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Addr + uint16(len(last.Data))
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.expansions = 0
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		label := op.LinkLabel
		addr, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		op.Data[0] = (op.Data[0] & 0xf0) | byte(addr>>8)&0x0f
		op.Data[1] = byte(addr)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// matches returns true if the operands fit the form.
func (f *form) matches(ops []operand) bool {
	if len(ops) != len(f.args) {
		return false
	}

	for n, want := range f.args {
		op := ops[n]
		switch want {
		case ARG_V0:
			if op.kind != ARG_REG || op.reg != 0 {
				return false
			}
		default:
			if op.kind != want {
				return false
			}
		}
	}

	return true
}

// encode places the operands into the form's instruction word.
func (asm *Assembler) encode(f *form, ops []operand) (code Code, label string, err error) {
	code = f.code

	for n, place := range f.layout {
		op := ops[n]
		switch place {
		case 'x':
			code |= Code(op.reg) << 8
		case 'y':
			code |= Code(op.reg) << 4
		case 'b':
			var value int64
			value, err = asm.rangeOf(op.word, -0x80, 0xff)
			if err != nil {
				return
			}
			code |= Code(uint8(value))
		case 'n':
			var value int64
			value, err = asm.rangeOf(op.word, 0, 0xf)
			if err != nil {
				return
			}
			code |= Code(value)
		case 'a':
			var addr uint16
			addr, label, err = asm.addressOf(op.word)
			if err != nil {
				return
			}
			code |= Code(addr)
		}
	}

	return
}

// parseInstruction encodes a mnemonic and its operands.
func (asm *Assembler) parseInstruction(words []string) (code Code, label string, err error) {
	forms, ok := mnemonicMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	ops := make([]operand, len(words)-1)
	for n, word := range words[1:] {
		ops[n] = operandOf(word)
	}

	least, most := len(forms[0].args), len(forms[0].args)
	for n := range forms {
		f := &forms[n]
		least = min(least, len(f.args))
		most = max(most, len(f.args))
		if f.matches(ops) {
			return asm.encode(f, ops)
		}
	}

	switch {
	case len(ops) < least:
		err = ErrOpcodeMissing
	case len(ops) > most:
		err = ErrOpcodeExtraArgs
	default:
		err = ErrOpcodeInvalid
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var data []byte
	var label string
	var is_data bool

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(data) == 0 {
			return
		}
		addr := asm.currentAddr()
		if int(addr)+len(data) > MEMORY_SIZE {
			err = ErrAddressRange
			return
		}
		opcode := Opcode{LineNo: lineno, Addr: addr, Words: initial_words, Data: data, LinkLabel: label, IsData: is_data}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	switch words[0] {
	case ".byte":
		is_data = true
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			var value int64
			value, err = asm.rangeOf(word, -0x80, 0xff)
			if err != nil {
				return
			}
			data = append(data, byte(value))
		}
	case ".word":
		is_data = true
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			var value int64
			value, err = asm.rangeOf(word, -0x8000, 0xffff)
			if err != nil && len(words) == 2 && reLabel.MatchString(word) {
				// A lone label links into the low 12 bits.
				value = 0
				label = word
				err = nil
			}
			if err != nil {
				return
			}
			data = append(data, byte(value>>8), byte(value))
		}
	default:
		var code Code
		code, label, err = asm.parseInstruction(words)
		if err != nil {
			return
		}
		data = []byte{byte(code >> 8), byte(code)}
	}

	return
}
