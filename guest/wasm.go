package guest

// Binary encoding of the WebAssembly module format, as far as the
// program images in this package need it.  Sections are length
// prefixed, vectors are count prefixed, and integers are LEB128.

// Section ids.
const (
	secCustom   = 0x00
	secType     = 0x01
	secImport   = 0x02
	secFunction = 0x03
	secMemory   = 0x05
	secExport   = 0x07
	secCode     = 0x0a
	secData     = 0x0b
)

// Opcodes.
const (
	opUnreachable = 0x00
	opCall        = 0x10
	opDrop        = 0x1a
	opI32Const    = 0x41
	opEnd         = 0x0b
)

// Type and export descriptor tags.
const (
	typeFunc   = 0x60
	valI32     = 0x7f
	kindFunc   = 0x00
	kindMemory = 0x02
)

// header is the magic number followed by version 1.
var header = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func cat(chunks ...[]byte) []byte {
	var p []byte
	for _, c := range chunks {
		p = append(p, c...)
	}
	return p
}

// uleb encodes v as an unsigned LEB128 integer.
func uleb(v uint32) []byte {
	var p []byte
	for {
		b := byte(v & 0x7f)
		if v >>= 7; v != 0 {
			p = append(p, b|0x80)
			continue
		}
		return append(p, b)
	}
}

// sleb encodes v as a signed LEB128 integer, the form i32.const takes.
func sleb(v int32) []byte {
	var p []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(p, b)
		}
		p = append(p, b|0x80)
	}
}

func section(id byte, chunks ...[]byte) []byte {
	payload := cat(chunks...)
	return cat([]byte{id}, uleb(uint32(len(payload))), payload)
}

func vec(n int, chunks ...[]byte) []byte {
	return cat(uleb(uint32(n)), cat(chunks...))
}

func name(s string) []byte {
	return cat(uleb(uint32(len(s))), []byte(s))
}

func funcType(params, results []byte) []byte {
	return cat([]byte{typeFunc}, vec(len(params), params), vec(len(results), results))
}

func funcImport(module, field string, typeIdx uint32) []byte {
	return cat(name(module), name(field), []byte{kindFunc}, uleb(typeIdx))
}

func export(field string, kind byte, idx uint32) []byte {
	return cat(name(field), []byte{kind}, uleb(idx))
}

// limits encodes a memory type with a minimum and no maximum.
func limits(min uint32) []byte {
	return cat([]byte{0x00}, uleb(min))
}

// body wraps instructions into a size-prefixed function body with no
// locals.  The trailing end is appended here.
func body(code ...[]byte) []byte {
	c := cat(uleb(0), cat(code...), []byte{opEnd})
	return cat(uleb(uint32(len(c))), c)
}

// data encodes an active segment for memory 0 at the given offset.
func data(offset int32, p []byte) []byte {
	return cat(uleb(0), i32Const(offset), []byte{opEnd}, uleb(uint32(len(p))), p)
}

// custom encodes a named custom section.
func custom(sec string, payload []byte) []byte {
	return section(secCustom, name(sec), payload)
}

func i32Const(v int32) []byte {
	return cat([]byte{opI32Const}, sleb(v))
}

func call(idx uint32) []byte {
	return cat([]byte{opCall}, uleb(idx))
}
