package hid

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Parse splits an encoded descriptor into raw items. Short items come back
// as AnyItem, long items as LongItem. Encoding the result yields the input.
func Parse(d Data) ([]Item, error) {
	var items []Item
	for i := 0; i < len(d); {
		h := d[i]
		if h == longItemPrefix {
			if i+3 > len(d) {
				return nil, fmt.Errorf("hid: truncated long item at offset %d", i)
			}
			n := int(d[i+1])
			if i+3+n > len(d) {
				return nil, fmt.Errorf("hid: truncated long item at offset %d", i)
			}
			items = append(items, LongItem{Tag: d[i+2], Data: Data(d[i+3 : i+3+n])})
			i += 3 + n
			continue
		}
		n := int(h & 0x3)
		if n == 3 {
			n = 4
		}
		if i+1+n > len(d) {
			return nil, fmt.Errorf("hid: truncated item 0x%02x at offset %d", h, i)
		}
		items = append(items, AnyItem{
			Type: ItemType((h >> 2) & 0x3),
			Tag:  h >> 4,
			Data: Data(d[i+1 : i+1+n]),
		})
		i += 1 + n
	}
	return items, nil
}

var itemNames = map[ItemType]map[uint8]string{
	ItemTypeMain: {
		tagInput:         "Input",
		tagOutput:        "Output",
		tagCollection:    "Collection",
		tagEndCollection: "End Collection",
	},
	ItemTypeGlobal: {
		tagUsagePage:      "Usage Page",
		tagLogicalMinimum: "Logical Minimum",
		tagLogicalMaximum: "Logical Maximum",
		tagPhysicalMin:    "Physical Minimum",
		tagPhysicalMax:    "Physical Maximum",
		tagUnit:           "Unit",
		tagReportSize:     "Report Size",
		tagReportCount:    "Report Count",
	},
	ItemTypeLocal: {
		tagUsage:        "Usage",
		tagUsageMinimum: "Usage Minimum",
		tagUsageMaximum: "Usage Maximum",
	},
}

// Name returns the item's HID name, or a type/tag placeholder.
func (a AnyItem) Name() string {
	if n, ok := itemNames[a.Type][a.Tag]; ok {
		return n
	}
	return fmt.Sprintf("%s 0x%x", a.Type, a.Tag)
}

// Value decodes the payload. Logical and physical extents are signed, all
// other items unsigned.
func (a AnyItem) Value() int64 {
	var buf [4]byte
	copy(buf[:], a.Data)
	u := binary.LittleEndian.Uint32(buf[:])
	if a.Type != ItemTypeGlobal {
		return int64(u)
	}
	switch a.Tag {
	case tagLogicalMinimum, tagLogicalMaximum, tagPhysicalMin, tagPhysicalMax:
		switch len(a.Data) {
		case 1:
			return int64(int8(u))
		case 2:
			return int64(int16(u))
		case 4:
			return int64(int32(u))
		}
	}
	return int64(u)
}

// Dump writes a human-readable listing of d, one item per line with its raw
// bytes, indented by collection depth.
func Dump(w io.Writer, d Data) error {
	items, err := Parse(d)
	if err != nil {
		return err
	}
	depth := 0
	for _, it := range items {
		e := &encoder{}
		if err := it.encode(e); err != nil {
			return err
		}
		raw := fmt.Sprintf("% x", e.buf)

		var desc string
		switch v := it.(type) {
		case AnyItem:
			if v.Type == ItemTypeMain && v.Tag == tagEndCollection && depth > 0 {
				depth--
			}
			desc = v.Name()
			if len(v.Data) > 0 {
				desc += fmt.Sprintf(" (%d)", v.Value())
			}
			desc = strings.Repeat("  ", depth) + desc
			if v.Type == ItemTypeMain && v.Tag == tagCollection {
				depth++
			}
		case LongItem:
			desc = strings.Repeat("  ", depth) + fmt.Sprintf("Long Item 0x%02x (%d bytes)", v.Tag, len(v.Data))
		}
		if _, err := fmt.Fprintf(w, "%-18s %s\n", raw, desc); err != nil {
			return err
		}
	}
	return nil
}
