package hid

// Short item tags, per HID 1.11 section 6.2.2.
const (
	tagInput         uint8 = 0x8
	tagOutput        uint8 = 0x9
	tagCollection    uint8 = 0xA
	tagEndCollection uint8 = 0xC

	tagUsagePage      uint8 = 0x0
	tagLogicalMinimum uint8 = 0x1
	tagLogicalMaximum uint8 = 0x2
	tagPhysicalMin    uint8 = 0x3
	tagPhysicalMax    uint8 = 0x4
	tagUnit           uint8 = 0x6
	tagReportSize     uint8 = 0x7
	tagReportCount    uint8 = 0x9

	tagUsage        uint8 = 0x0
	tagUsageMinimum uint8 = 0x1
	tagUsageMaximum uint8 = 0x2
)

type UsagePage struct{ Page uint16 }

func (u UsagePage) encode(e *encoder) error {
	return e.short(tagUsagePage, ItemTypeGlobal, dataU32(uint32(u.Page)))
}

type Usage struct{ Usage uint16 }

func (u Usage) encode(e *encoder) error {
	return e.short(tagUsage, ItemTypeLocal, dataU32(uint32(u.Usage)))
}

// Collection opens a collection, encodes its children and closes it.
type Collection struct {
	Kind  CollectionKind
	Items []Item
}

func (c Collection) encode(e *encoder) error {
	if err := e.short(tagCollection, ItemTypeMain, Data{uint8(c.Kind)}); err != nil {
		return err
	}
	for _, it := range c.Items {
		if err := it.encode(e); err != nil {
			return err
		}
	}
	return e.short(tagEndCollection, ItemTypeMain, nil)
}

type UsageMinimum struct{ Min uint16 }

func (u UsageMinimum) encode(e *encoder) error {
	return e.short(tagUsageMinimum, ItemTypeLocal, dataU32(uint32(u.Min)))
}

type UsageMaximum struct{ Max uint16 }

func (u UsageMaximum) encode(e *encoder) error {
	return e.short(tagUsageMaximum, ItemTypeLocal, dataU32(uint32(u.Max)))
}

type LogicalMinimum struct{ Min int32 }

func (l LogicalMinimum) encode(e *encoder) error {
	return e.short(tagLogicalMinimum, ItemTypeGlobal, dataI32(l.Min))
}

type LogicalMaximum struct{ Max int32 }

func (l LogicalMaximum) encode(e *encoder) error {
	return e.short(tagLogicalMaximum, ItemTypeGlobal, dataI32(l.Max))
}

type PhysicalMinimum struct{ Min int32 }

func (p PhysicalMinimum) encode(e *encoder) error {
	return e.short(tagPhysicalMin, ItemTypeGlobal, dataI32(p.Min))
}

type PhysicalMaximum struct{ Max int32 }

func (p PhysicalMaximum) encode(e *encoder) error {
	return e.short(tagPhysicalMax, ItemTypeGlobal, dataI32(p.Max))
}

// Unit sets the unit of the following fields; see the Unit* constants.
type Unit struct{ Unit uint32 }

func (u Unit) encode(e *encoder) error {
	return e.short(tagUnit, ItemTypeGlobal, dataU32(u.Unit))
}

// ReportSize is the field width in bits.
type ReportSize struct{ Bits uint8 }

func (r ReportSize) encode(e *encoder) error {
	return e.short(tagReportSize, ItemTypeGlobal, Data{r.Bits})
}

type ReportCount struct{ Count uint16 }

func (r ReportCount) encode(e *encoder) error {
	return e.short(tagReportCount, ItemTypeGlobal, dataU32(uint32(r.Count)))
}

type Input struct{ Flags MainFlags }

func (i Input) encode(e *encoder) error {
	return e.short(tagInput, ItemTypeMain, Data{uint8(i.Flags)})
}

type Output struct{ Flags MainFlags }

func (o Output) encode(e *encoder) error {
	return e.short(tagOutput, ItemTypeMain, Data{uint8(o.Flags)})
}
