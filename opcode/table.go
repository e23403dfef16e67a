package opcode

import "strings"

// Info is the static description of one mnemonic: everything the encoder
// needs to know that doesn't come from the operands on the line.
type Info struct {
	Name        string
	Family      Family
	Opcode      uint32 // 6 bits
	Funct       uint32 // 6 bits
	Fmt         uint32 // 5 bits, COP1 format field
	CopOp       uint32 // 5 bits, COP0 rs-field sub-opcode (MF/MT); COP1 moves carry theirs in Fmt
	RtField     uint32 // 5 bits, fixed rt used by IBranchRsRtFmt
	CCBit       uint32 // 1 bit, FPU branch condition-code sense
	CustomValue uint32 // verbatim word for Custom family
}

// SPECIAL/REGIMM/COP0/COP1 primary opcodes, named for readability in the
// table below.
const (
	opSpecial = 0x00
	opRegimm  = 0x01
	opJ       = 0x02
	opJal     = 0x03
	opBeq     = 0x04
	opBne     = 0x05
	opBlez    = 0x06
	opBgtz    = 0x07
	opAddi    = 0x08
	opAddiu   = 0x09
	opSlti    = 0x0A
	opSltiu   = 0x0B
	opAndi    = 0x0C
	opOri     = 0x0D
	opXori    = 0x0E
	opLui     = 0x0F
	opCop0    = 0x10
	opCop1    = 0x11
	opBeql    = 0x14
	opBnel    = 0x15
	opDaddi   = 0x18
	opDaddiu  = 0x19
	opLq      = 0x1E
	opSq      = 0x1F
	opLb      = 0x20
	opLh      = 0x21
	opLwl     = 0x22
	opLw      = 0x23
	opLbu     = 0x24
	opLhu     = 0x25
	opLwr     = 0x26
	opLwu     = 0x27
	opSb      = 0x28
	opSh      = 0x29
	opSwl     = 0x2A
	opSw      = 0x2B
	opSwr     = 0x2E
	opLwc1    = 0x31
	opSwc1    = 0x39
	opLd      = 0x37
	opSd      = 0x3F
)

// fmtSingle/fmtWord are the COP1 "fmt" field values of the arithmetic,
// compare and convert entries — the Emotion Engine FPU is single-precision
// only. The only convert forms in the table are cvt.w.s and cvt.s.w; it has
// no double- or long-format convert entries. fmtBC/fmtMF/fmtMT are the
// rs-field values of bc1f/bc1t and mfc1/mtc1.
const (
	fmtSingle = 0x10
	fmtWord   = 0x14
	fmtBC     = 0x08
	fmtMF     = 0x00
	fmtMT     = 0x04
)

var table map[string]Info

func init() {
	table = make(map[string]Info, 128)
	for _, info := range entries {
		register(info)
	}
}

func register(info Info) {
	table[strings.ToLower(info.Name)] = info
}

// Lookup resolves a mnemonic case-insensitively.
func Lookup(mnemonic string) (Info, bool) {
	info, ok := table[strings.ToLower(mnemonic)]
	return info, ok
}

// entries is the mnemonic table proper. It is intentionally written as flat
// data — this is the table an implementer is meant to be able to treat as a
// data file.
var entries = []Info{
	// --- integer arithmetic, logic, set-less-than, load-upper ---
	{Name: "add", Family: R, Opcode: opSpecial, Funct: 0x20},
	{Name: "addu", Family: R, Opcode: opSpecial, Funct: 0x21},
	{Name: "sub", Family: R, Opcode: opSpecial, Funct: 0x22},
	{Name: "subu", Family: R, Opcode: opSpecial, Funct: 0x23},
	{Name: "and", Family: R, Opcode: opSpecial, Funct: 0x24},
	{Name: "or", Family: R, Opcode: opSpecial, Funct: 0x25},
	{Name: "xor", Family: R, Opcode: opSpecial, Funct: 0x26},
	{Name: "nor", Family: R, Opcode: opSpecial, Funct: 0x27},
	{Name: "slt", Family: R, Opcode: opSpecial, Funct: 0x2A},
	{Name: "sltu", Family: R, Opcode: opSpecial, Funct: 0x2B},
	{Name: "dadd", Family: R, Opcode: opSpecial, Funct: 0x2C},
	{Name: "daddu", Family: R, Opcode: opSpecial, Funct: 0x2D},
	{Name: "dsub", Family: R, Opcode: opSpecial, Funct: 0x2E},
	{Name: "dsubu", Family: R, Opcode: opSpecial, Funct: 0x2F},

	{Name: "addi", Family: I, Opcode: opAddi},
	{Name: "addiu", Family: I, Opcode: opAddiu},
	{Name: "slti", Family: I, Opcode: opSlti},
	{Name: "sltiu", Family: I, Opcode: opSltiu},
	{Name: "andi", Family: I, Opcode: opAndi},
	{Name: "ori", Family: I, Opcode: opOri},
	{Name: "xori", Family: I, Opcode: opXori},
	{Name: "lui", Family: I, Opcode: opLui},
	{Name: "daddi", Family: I, Opcode: opDaddi},
	{Name: "daddiu", Family: I, Opcode: opDaddiu},

	// --- shifts ---
	{Name: "sll", Family: RShift, Opcode: opSpecial, Funct: 0x00},
	{Name: "srl", Family: RShift, Opcode: opSpecial, Funct: 0x02},
	{Name: "sra", Family: RShift, Opcode: opSpecial, Funct: 0x03},
	{Name: "sllv", Family: RShiftV, Opcode: opSpecial, Funct: 0x04},
	{Name: "srlv", Family: RShiftV, Opcode: opSpecial, Funct: 0x06},
	{Name: "srav", Family: RShiftV, Opcode: opSpecial, Funct: 0x07},
	{Name: "dsll", Family: RShift, Opcode: opSpecial, Funct: 0x38},
	{Name: "dsrl", Family: RShift, Opcode: opSpecial, Funct: 0x3A},
	{Name: "dsra", Family: RShift, Opcode: opSpecial, Funct: 0x3B},
	{Name: "dsllv", Family: RShiftV, Opcode: opSpecial, Funct: 0x14},
	{Name: "dsrlv", Family: RShiftV, Opcode: opSpecial, Funct: 0x16},
	{Name: "dsrav", Family: RShiftV, Opcode: opSpecial, Funct: 0x17},
	{Name: "dsll32", Family: RShiftPlus32, Opcode: opSpecial, Funct: 0x3C},
	{Name: "dsrl32", Family: RShiftPlus32, Opcode: opSpecial, Funct: 0x3E},
	{Name: "dsra32", Family: RShiftPlus32, Opcode: opSpecial, Funct: 0x3F},

	// --- multiply/divide ---
	{Name: "mult", Family: RMultDiv, Opcode: opSpecial, Funct: 0x18},
	{Name: "multu", Family: RMultDiv, Opcode: opSpecial, Funct: 0x19},
	{Name: "div", Family: RMultDiv, Opcode: opSpecial, Funct: 0x1A},
	{Name: "divu", Family: RMultDiv, Opcode: opSpecial, Funct: 0x1B},
	{Name: "dmult", Family: RMultDiv, Opcode: opSpecial, Funct: 0x1C},
	{Name: "dmultu", Family: RMultDiv, Opcode: opSpecial, Funct: 0x1D},
	{Name: "ddiv", Family: RMultDiv, Opcode: opSpecial, Funct: 0x1E},
	{Name: "ddivu", Family: RMultDiv, Opcode: opSpecial, Funct: 0x1F},
	{Name: "mfhi", Family: RMfhiMflo, Opcode: opSpecial, Funct: 0x10},
	{Name: "mflo", Family: RMfhiMflo, Opcode: opSpecial, Funct: 0x12},
	{Name: "mthi", Family: RMthiMtlo, Opcode: opSpecial, Funct: 0x11},
	{Name: "mtlo", Family: RMthiMtlo, Opcode: opSpecial, Funct: 0x13},

	// --- jumps ---
	{Name: "jr", Family: RJalr, Opcode: opSpecial, Funct: 0x08},
	{Name: "jalr", Family: RJalr, Opcode: opSpecial, Funct: 0x09},
	{Name: "j", Family: J, Opcode: opJ},
	{Name: "jal", Family: J, Opcode: opJal},

	// --- branches ---
	{Name: "beq", Family: IBranch, Opcode: opBeq},
	{Name: "bne", Family: IBranch, Opcode: opBne},
	{Name: "beql", Family: IBranchLikely, Opcode: opBeql},
	{Name: "bnel", Family: IBranchLikely, Opcode: opBnel},
	{Name: "blez", Family: IBranchRsZero, Opcode: opBlez},
	{Name: "bgtz", Family: IBranchRsZero, Opcode: opBgtz},
	{Name: "bltz", Family: IBranchRsRtFmt, Opcode: opRegimm, RtField: 0x00},
	{Name: "bgez", Family: IBranchRsRtFmt, Opcode: opRegimm, RtField: 0x01},
	{Name: "bltzal", Family: IBranchRsRtFmt, Opcode: opRegimm, RtField: 0x10},
	{Name: "bgezal", Family: IBranchRsRtFmt, Opcode: opRegimm, RtField: 0x11},

	// --- memory ---
	{Name: "lb", Family: I, Opcode: opLb},
	{Name: "lbu", Family: I, Opcode: opLbu},
	{Name: "lh", Family: I, Opcode: opLh},
	{Name: "lhu", Family: I, Opcode: opLhu},
	{Name: "lw", Family: I, Opcode: opLw},
	{Name: "lwu", Family: I, Opcode: opLwu},
	{Name: "sb", Family: I, Opcode: opSb},
	{Name: "sh", Family: I, Opcode: opSh},
	{Name: "sw", Family: I, Opcode: opSw},
	{Name: "ld", Family: ILdSd, Opcode: opLd},
	{Name: "sd", Family: ILdSd, Opcode: opSd},
	{Name: "lq", Family: ILdSd, Opcode: opLq},
	{Name: "sq", Family: ILdSd, Opcode: opSq},

	// --- privileged / system ---
	{Name: "syscall", Family: RSyscallBreak, Opcode: opSpecial, Funct: 0x0C},
	{Name: "break", Family: RSyscallBreak, Opcode: opSpecial, Funct: 0x0D},
	{Name: "sync", Family: RSync, Opcode: opSpecial, Funct: 0x0F},
	{Name: "eret", Family: RERet},
	{Name: "mfc0", Family: Cop0Mov, Opcode: opCop0, CopOp: fmtMF},
	{Name: "mtc0", Family: Cop0Mov, Opcode: opCop0, CopOp: fmtMT},

	// --- FPU load/store/move ---
	{Name: "lwc1", Family: IFpuLs, Opcode: opLwc1},
	{Name: "swc1", Family: IFpuLs, Opcode: opSwc1},
	{Name: "mfc1", Family: FpuMov, Opcode: opCop1, Fmt: fmtMF},
	{Name: "mtc1", Family: FpuMov, Opcode: opCop1, Fmt: fmtMT},

	// --- FPU arithmetic (single precision) ---
	{Name: "add.s", Family: FpuR, Opcode: opCop1, Fmt: fmtSingle, Funct: 0x00},
	{Name: "sub.s", Family: FpuR, Opcode: opCop1, Fmt: fmtSingle, Funct: 0x01},
	{Name: "mul.s", Family: FpuR, Opcode: opCop1, Fmt: fmtSingle, Funct: 0x02},
	{Name: "div.s", Family: FpuR, Opcode: opCop1, Fmt: fmtSingle, Funct: 0x03},
	{Name: "sqrt.s", Family: FpuRUn, Opcode: opCop1, Fmt: fmtSingle, Funct: 0x04},
	{Name: "abs.s", Family: FpuRUn, Opcode: opCop1, Fmt: fmtSingle, Funct: 0x05},
	{Name: "mov.s", Family: FpuRUn, Opcode: opCop1, Fmt: fmtSingle, Funct: 0x06},
	{Name: "neg.s", Family: FpuRUn, Opcode: opCop1, Fmt: fmtSingle, Funct: 0x07},

	// --- FPU convert ---
	{Name: "cvt.w.s", Family: FpuCvt, Opcode: opCop1, Fmt: fmtSingle, Funct: 0x24},
	{Name: "cvt.s.w", Family: FpuCvt, Opcode: opCop1, Fmt: fmtWord, Funct: 0x20},

	// --- FPU compare ---
	{Name: "c.eq.s", Family: FpuCmp, Opcode: opCop1, Fmt: fmtSingle, Funct: 0x32},
	{Name: "c.lt.s", Family: FpuCmp, Opcode: opCop1, Fmt: fmtSingle, Funct: 0x3C},
	{Name: "c.le.s", Family: FpuCmp, Opcode: opCop1, Fmt: fmtSingle, Funct: 0x3E},

	// --- FPU branch ---
	{Name: "bc1f", Family: FpuBranch, Opcode: opCop1, Fmt: fmtBC, CCBit: 0},
	{Name: "bc1t", Family: FpuBranch, Opcode: opCop1, Fmt: fmtBC, CCBit: 1},

	// --- custom / pseudo ---
	{Name: "nop", Family: Custom, CustomValue: 0x00000000},
	{Name: "b", Family: PseudoBranch},
	{Name: "setreg", Family: PseudoSetreg},
}
