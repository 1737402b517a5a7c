package oracle

// Seeds are the hand-verified circuits the table is grown from. Each one is
// expanded into its color-swapped variants by Generate.
var Seeds = []Entry{
	0x41020000, 0x43420690, 0x41020001, 0x41038007, 0x45422850, 0x417a0019,
	0x47026200, 0x41038000, 0x4703e200, 0x41038004, 0x411a4000, 0x41024000,
	0x43330248, 0x43028a00, 0x410b0404, 0x410b0500, 0x41020840, 0x411a0001,
	0x411b80c1, 0x41024001, 0x41024cc1, 0x47026201, 0x80408000, 0x80c48004,
	0x804aa000, 0x805ea408, 0x8040c000, 0x804c9000, 0x80528200, 0x80548100,
	0x8058c000, 0x8058c440, 0x80c4c004, 0x80468008, 0x80468002, 0x805e9402,
	0x80588400, 0x80529602, 0x8054a508, 0x804aa142, 0x804aa040, 0x80548108,
	0x24080000, 0x248c1000, 0x2528240c, 0x24098080, 0x244c0802, 0x244c0a02,
	0x24098000, 0x240e0200, 0x240c8004, 0x24098001, 0x240c8204, 0x240a8010,
	0x24a81412, 0x2408000c, 0xa4008080, 0xa4488800, 0xa4cc9804, 0xa0480400,
	0xa0cc0404, 0xa4809290, 0xa0c8240c, 0xa40083b4, 0x650a2000, 0x64020200,
	0x61081000, 0x64030248, 0x61099000, 0x61681019, 0x61081001, 0xc1428010,
	0xc0420008, 0xc1008004, 0xc1108184, 0xc1188404, 0xc0426648, 0xc118c444,
	0xc142c010, 0xc1188044, 0xe54aa810, 0xe14a0410, 0xe0481008, 0xe4420a48,
	0xe1089804, 0xe1080404, 0xe4020088, 0xe0420600, 0xe04a2408, 0xe44a0808,
	0xe4008204, 0xe44a0908, 0xe1009080, 0xe508a004, 0xe500a184, 0xe1481412,
	0xe4428a00,
}
