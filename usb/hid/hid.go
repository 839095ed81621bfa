// Package hid models HID report descriptors as a tree of Go values and
// encodes them to the exact descriptor byte stream written to the gadget's
// report_desc attribute.
package hid

import (
	"fmt"
)

// Data is an encoded descriptor or item payload.
type Data []uint8

// ItemType is the HID short item "type" field: Main=0, Global=1, Local=2.
type ItemType uint8

const (
	ItemTypeMain     ItemType = 0
	ItemTypeGlobal   ItemType = 1
	ItemTypeLocal    ItemType = 2
	ItemTypeReserved ItemType = 3
)

func (t ItemType) String() string {
	switch t {
	case ItemTypeMain:
		return "Main"
	case ItemTypeGlobal:
		return "Global"
	case ItemTypeLocal:
		return "Local"
	}
	return "Reserved"
}

// Item is one node in a report descriptor.
type Item interface {
	encode(e *encoder) error
}

// Report is a complete HID report descriptor (type 0x22).
type Report struct {
	Items []Item
}

// Bytes encodes the report descriptor.
func (r Report) Bytes() (Data, error) {
	e := &encoder{}
	for i, it := range r.Items {
		if it == nil {
			return nil, fmt.Errorf("hid: nil item at index %d", i)
		}
		if err := it.encode(e); err != nil {
			return nil, err
		}
	}
	return Data(e.buf), nil
}

// MustBytes is Bytes for descriptors built from constants.
func (r Report) MustBytes() Data {
	b, err := r.Bytes()
	if err != nil {
		panic(err)
	}
	return b
}

// AnyItem is a raw short item, used for vendor items and as the result of
// Parse.
type AnyItem struct {
	Type ItemType
	Tag  uint8
	Data Data
}

func (a AnyItem) encode(e *encoder) error {
	return e.short(a.Tag, a.Type, a.Data)
}

// LongItem encodes a HID long item: 0xFE, len, tag, data...
type LongItem struct {
	Tag  uint8
	Data Data
}

func (l LongItem) encode(e *encoder) error {
	if len(l.Data) > 255 {
		return fmt.Errorf("hid: long item too large: %d", len(l.Data))
	}
	e.buf = append(e.buf, longItemPrefix, uint8(len(l.Data)), l.Tag)
	e.buf = append(e.buf, l.Data...)
	return nil
}

const longItemPrefix = 0xFE

type encoder struct {
	buf []byte
}

func (e *encoder) short(tag uint8, typ ItemType, data Data) error {
	code, ok := sizeCode(len(data))
	if !ok {
		return fmt.Errorf("hid: short item data must be 0/1/2/4 bytes, got %d", len(data))
	}
	e.buf = append(e.buf, (tag<<4)|(uint8(typ)<<2)|code)
	e.buf = append(e.buf, data...)
	return nil
}

func sizeCode(n int) (uint8, bool) {
	switch n {
	case 0, 1, 2:
		return uint8(n), true
	case 4:
		return 3, true
	}
	return 0, false
}

func dataU32(v uint32) Data {
	if v <= 0xFF {
		return Data{uint8(v)}
	}
	if v <= 0xFFFF {
		return Data{uint8(v), uint8(v >> 8)}
	}
	return Data{uint8(v), uint8(v >> 8), uint8(v >> 16), uint8(v >> 24)}
}

// dataI32 picks the smallest two's complement width that keeps the sign,
// so 255 needs two bytes.
func dataI32(v int32) Data {
	if v >= -128 && v <= 127 {
		return Data{uint8(v)}
	}
	if v >= -32768 && v <= 32767 {
		uv := uint16(int16(v))
		return Data{uint8(uv), uint8(uv >> 8)}
	}
	uv := uint32(v)
	return Data{uint8(uv), uint8(uv >> 8), uint8(uv >> 16), uint8(uv >> 24)}
}
