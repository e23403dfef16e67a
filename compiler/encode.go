package compiler

import (
	"fmt"
	"strings"

	"eeasm/opcode"
	"eeasm/operand"
	"eeasm/register"
)

// Primary opcodes the I-family encoder has to special-case by shape. These
// mirror the numeric values opcode.table assigns the same mnemonics.
const (
	opcodeLui = 0x0F
)

var memoryOpcodes = map[uint32]bool{
	0x20: true, // lb
	0x24: true, // lbu
	0x21: true, // lh
	0x25: true, // lhu
	0x23: true, // lw
	0x27: true, // lwu
	0x28: true, // sb
	0x29: true, // sh
	0x2B: true, // sw
}

func regField(op string, labels operand.Labels) (uint32, error) {
	v, err := operand.Parse(op, labels, false)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 31 {
		return 0, fmt.Errorf("register field out of range: %q", op)
	}
	return uint32(v) & 0x1F, nil
}

func imm16(op string, labels operand.Labels) (uint32, error) {
	v, err := operand.Parse(op, labels, true)
	if err != nil {
		return 0, err
	}
	return uint32(v) & 0xFFFF, nil
}

func fpReg(op string) (uint32, error) {
	idx, ok := register.LookupFPR(strings.TrimSpace(op))
	if !ok {
		return 0, fmt.Errorf("expected an FPR operand, got %q", op)
	}
	return uint32(idx) & 0x1F, nil
}

// branchOffset implements the dialect's PC-relative branch encoding:
// (target - (address_of_branch + 4)) / 4, range-checked to a signed 16-bit
// word count.
func branchOffset(target, addressOfBranch uint32) (uint32, error) {
	off := (int64(target) - (int64(addressOfBranch) + 4)) / 4
	if off < -32768 || off > 32767 {
		return 0, fmt.Errorf("branch offset %d out of 16-bit range", off)
	}
	return uint32(int32(off)) & 0xFFFF, nil
}

// requireArgs is a small arity guard shared by every encoder below.
func requireArgs(args []string, n int, shape string) error {
	if len(args) != n {
		return fmt.Errorf("expected %s, got %d operand(s)", shape, len(args))
	}
	return nil
}

func encodeR(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	if err := requireArgs(args, 3, "rd, rs, rt"); err != nil {
		return 0, err
	}
	rd, err := regField(args[0], labels)
	if err != nil {
		return 0, err
	}
	rs, err := regField(args[1], labels)
	if err != nil {
		return 0, err
	}
	rt, err := regField(args[2], labels)
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (rs << 21) | (rt << 16) | (rd << 11) | info.Funct, nil
}

func encodeRJalr(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	var rsArg, rdArg string
	rd := uint32(31)
	haveRd := false
	switch len(args) {
	case 1:
		rsArg = args[0]
		if strings.EqualFold(info.Name, "jr") {
			// jr has no link register; its rd field stays zero.
			rd = 0
		}
	case 2:
		rdArg, rsArg = args[0], args[1]
		haveRd = true
	default:
		return 0, fmt.Errorf("expected rs, or rd, rs")
	}
	rs, err := regField(rsArg, labels)
	if err != nil {
		return 0, err
	}
	if haveRd {
		rd, err = regField(rdArg, labels)
		if err != nil {
			return 0, err
		}
	}
	return (info.Opcode << 26) | (rs << 21) | (rd << 11) | info.Funct, nil
}

func encodeRShift(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	if err := requireArgs(args, 3, "rd, rt, shamt"); err != nil {
		return 0, err
	}
	rd, err := regField(args[0], labels)
	if err != nil {
		return 0, err
	}
	rt, err := regField(args[1], labels)
	if err != nil {
		return 0, err
	}
	shamt, err := imm16(args[2], labels)
	if err != nil {
		return 0, err
	}
	shamt &= 0x1F
	return (info.Opcode << 26) | (rt << 16) | (rd << 11) | (shamt << 6) | info.Funct, nil
}

func encodeRShiftV(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	if err := requireArgs(args, 3, "rd, rt, rs"); err != nil {
		return 0, err
	}
	rd, err := regField(args[0], labels)
	if err != nil {
		return 0, err
	}
	rt, err := regField(args[1], labels)
	if err != nil {
		return 0, err
	}
	rs, err := regField(args[2], labels)
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (rs << 21) | (rt << 16) | (rd << 11) | info.Funct, nil
}

func encodeRMultDiv(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	var rd, rs, rt uint32
	var err error
	switch len(args) {
	case 2:
		rs, err = regField(args[0], labels)
		if err != nil {
			return 0, err
		}
		rt, err = regField(args[1], labels)
		if err != nil {
			return 0, err
		}
	case 3:
		rd, err = regField(args[0], labels)
		if err != nil {
			return 0, err
		}
		rs, err = regField(args[1], labels)
		if err != nil {
			return 0, err
		}
		rt, err = regField(args[2], labels)
		if err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("expected rs, rt, or rd, rs, rt")
	}
	return (info.Opcode << 26) | (rs << 21) | (rt << 16) | (rd << 11) | info.Funct, nil
}

func encodeRMfhiMflo(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	if err := requireArgs(args, 1, "rd"); err != nil {
		return 0, err
	}
	rd, err := regField(args[0], labels)
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (rd << 11) | info.Funct, nil
}

func encodeRMthiMtlo(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	if err := requireArgs(args, 1, "rs"); err != nil {
		return 0, err
	}
	rs, err := regField(args[0], labels)
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (rs << 21) | info.Funct, nil
}

func encodeRCode20(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	var code uint32
	switch len(args) {
	case 0:
	case 1:
		v, err := operand.Parse(args[0], labels, true)
		if err != nil {
			return 0, err
		}
		code = uint32(v) & 0xFFFFF
	default:
		return 0, fmt.Errorf("expected at most one code operand")
	}
	return (info.Opcode << 26) | (code << 6) | info.Funct, nil
}

func encodeRERet(args []string) (uint32, error) {
	if err := requireArgs(args, 0, "no operands"); err != nil {
		return 0, err
	}
	return (uint32(0x10) << 26) | (1 << 25) | 0x18, nil
}

func encodeI(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	if info.Opcode == opcodeLui {
		if err := requireArgs(args, 2, "rt, imm"); err != nil {
			return 0, err
		}
		rt, err := regField(args[0], labels)
		if err != nil {
			return 0, err
		}
		imm, err := imm16(args[1], labels)
		if err != nil {
			return 0, err
		}
		return (info.Opcode << 26) | (rt << 16) | imm, nil
	}

	if memoryOpcodes[info.Opcode] {
		return encodeMemory(info, args, labels)
	}

	if err := requireArgs(args, 3, "rt, rs, imm"); err != nil {
		return 0, err
	}
	rt, err := regField(args[0], labels)
	if err != nil {
		return 0, err
	}
	rs, err := regField(args[1], labels)
	if err != nil {
		return 0, err
	}
	imm, err := imm16(args[2], labels)
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (rs << 21) | (rt << 16) | imm, nil
}

func encodeMemory(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	if err := requireArgs(args, 2, "rt, offset(base)"); err != nil {
		return 0, err
	}
	rt, err := regField(args[0], labels)
	if err != nil {
		return 0, err
	}
	imm, rs, err := operand.ParseMemoryOffset(args[1], labels)
	if err != nil {
		return 0, err
	}
	if rs < 0 || rs > 31 {
		return 0, fmt.Errorf("base register out of range: %q", args[1])
	}
	return (info.Opcode << 26) | ((uint32(rs) & 0x1F) << 21) | (rt << 16) | (uint32(imm) & 0xFFFF), nil
}

func encodeILdSd(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	return encodeMemory(info, args, labels)
}

func encodeBranch(info opcode.Info, args []string, labels operand.Labels, address uint32) (uint32, error) {
	if err := requireArgs(args, 3, "rs, rt, target"); err != nil {
		return 0, err
	}
	rs, err := regField(args[0], labels)
	if err != nil {
		return 0, err
	}
	rt, err := regField(args[1], labels)
	if err != nil {
		return 0, err
	}
	target, err := operand.Parse(args[2], labels, false)
	if err != nil {
		return 0, err
	}
	offset, err := branchOffset(uint32(target), address)
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (rs << 21) | (rt << 16) | offset, nil
}

func encodeBranchRsZero(info opcode.Info, args []string, labels operand.Labels, address uint32) (uint32, error) {
	if err := requireArgs(args, 2, "rs, target"); err != nil {
		return 0, err
	}
	rs, err := regField(args[0], labels)
	if err != nil {
		return 0, err
	}
	target, err := operand.Parse(args[1], labels, false)
	if err != nil {
		return 0, err
	}
	offset, err := branchOffset(uint32(target), address)
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (rs << 21) | offset, nil
}

func encodeBranchRsRtFmt(info opcode.Info, args []string, labels operand.Labels, address uint32) (uint32, error) {
	if err := requireArgs(args, 2, "rs, target"); err != nil {
		return 0, err
	}
	rs, err := regField(args[0], labels)
	if err != nil {
		return 0, err
	}
	target, err := operand.Parse(args[1], labels, false)
	if err != nil {
		return 0, err
	}
	offset, err := branchOffset(uint32(target), address)
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (rs << 21) | (info.RtField << 16) | offset, nil
}

func encodeCop0Mov(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	if err := requireArgs(args, 2, "rt, rd"); err != nil {
		return 0, err
	}
	rt, err := regField(args[0], labels)
	if err != nil {
		return 0, err
	}
	rd, err := regField(args[1], labels)
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (info.CopOp << 21) | (rt << 16) | (rd << 11), nil
}

func encodeIFpuLs(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	if err := requireArgs(args, 2, "ft, offset(base)"); err != nil {
		return 0, err
	}
	ft, err := fpReg(args[0])
	if err != nil {
		return 0, err
	}
	imm, rs, err := operand.ParseMemoryOffset(args[1], labels)
	if err != nil {
		return 0, err
	}
	if rs < 0 || rs > 31 {
		return 0, fmt.Errorf("base register out of range: %q", args[1])
	}
	return (info.Opcode << 26) | ((uint32(rs) & 0x1F) << 21) | (ft << 16) | (uint32(imm) & 0xFFFF), nil
}

// splitGprFpr resolves an mfc1/mtc1 operand pair regardless of order: exactly
// one of the two must be a GPR spelling and the other an FPR spelling.
func splitGprFpr(a, b string) (gpr uint32, fpr uint32, err error) {
	aIsFPR, bIsFPR := register.IsFPR(a), register.IsFPR(b)
	if aIsFPR == bIsFPR {
		return 0, 0, fmt.Errorf("mfc1/mtc1 require one GPR and one FPR operand, got %q and %q", a, b)
	}
	gprSpelling, fprSpelling := a, b
	if aIsFPR {
		gprSpelling, fprSpelling = b, a
	}
	gprIdx, ok := register.LookupGPR(strings.TrimSpace(gprSpelling))
	if !ok {
		return 0, 0, fmt.Errorf("expected a GPR operand, got %q", gprSpelling)
	}
	fprIdx, err := fpReg(fprSpelling)
	if err != nil {
		return 0, 0, err
	}
	return uint32(gprIdx) & 0x1F, fprIdx, nil
}

func encodeFpuMov(info opcode.Info, args []string) (uint32, error) {
	if err := requireArgs(args, 2, "gpr, fpr (either order)"); err != nil {
		return 0, err
	}
	gpr, fpr, err := splitGprFpr(args[0], args[1])
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (info.Fmt << 21) | (gpr << 16) | (fpr << 11), nil
}

func encodeFpuR(info opcode.Info, args []string) (uint32, error) {
	if err := requireArgs(args, 3, "fd, fs, ft"); err != nil {
		return 0, err
	}
	fd, err := fpReg(args[0])
	if err != nil {
		return 0, err
	}
	fs, err := fpReg(args[1])
	if err != nil {
		return 0, err
	}
	ft, err := fpReg(args[2])
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (info.Fmt << 21) | (ft << 16) | (fs << 11) | (fd << 6) | info.Funct, nil
}

func encodeFpuRUn(name string, info opcode.Info, args []string) (uint32, error) {
	if err := requireArgs(args, 2, "fd, fs"); err != nil {
		return 0, err
	}
	fd, err := fpReg(args[0])
	if err != nil {
		return 0, err
	}
	fs, err := fpReg(args[1])
	if err != nil {
		return 0, err
	}
	ft := uint32(0)
	if strings.EqualFold(name, "sqrt.s") && fd == fs {
		ft = fd
		fs = 0
	}
	return (info.Opcode << 26) | (info.Fmt << 21) | (ft << 16) | (fs << 11) | (fd << 6) | info.Funct, nil
}

func encodeFpuCvt(info opcode.Info, args []string) (uint32, error) {
	if err := requireArgs(args, 2, "fd, fs"); err != nil {
		return 0, err
	}
	fd, err := fpReg(args[0])
	if err != nil {
		return 0, err
	}
	fs, err := fpReg(args[1])
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (info.Fmt << 21) | (fs << 11) | (fd << 6) | info.Funct, nil
}

func encodeFpuCmp(info opcode.Info, args []string) (uint32, error) {
	if err := requireArgs(args, 2, "fs, ft"); err != nil {
		return 0, err
	}
	fs, err := fpReg(args[0])
	if err != nil {
		return 0, err
	}
	ft, err := fpReg(args[1])
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (info.Fmt << 21) | (ft << 16) | (fs << 11) | info.Funct, nil
}

func encodeFpuBranch(info opcode.Info, args []string, labels operand.Labels, address uint32) (uint32, error) {
	if err := requireArgs(args, 1, "target"); err != nil {
		return 0, err
	}
	target, err := operand.Parse(args[0], labels, false)
	if err != nil {
		return 0, err
	}
	offset, err := branchOffset(uint32(target), address)
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | (info.Fmt << 21) | (info.CCBit << 16) | offset, nil
}

func encodeJ(info opcode.Info, args []string, labels operand.Labels) (uint32, error) {
	if err := requireArgs(args, 1, "target"); err != nil {
		return 0, err
	}
	target, err := operand.Parse(args[0], labels, false)
	if err != nil {
		return 0, err
	}
	return (info.Opcode << 26) | ((uint32(target) >> 2) & 0x03FFFFFF), nil
}

func encodeCustom(info opcode.Info, args []string) (uint32, error) {
	if err := requireArgs(args, 0, "no operands"); err != nil {
		return 0, err
	}
	return info.CustomValue, nil
}

func encodePseudoBranch(args []string, labels operand.Labels, address uint32) ([]uint32, error) {
	if err := requireArgs(args, 1, "target"); err != nil {
		return nil, err
	}
	beq, _ := opcode.Lookup("beq")
	target, err := operand.Parse(args[0], labels, false)
	if err != nil {
		return nil, err
	}
	offset, err := branchOffset(uint32(target), address)
	if err != nil {
		return nil, err
	}
	return []uint32{(beq.Opcode << 26) | offset}, nil
}

func encodePseudoSetreg(args []string, labels operand.Labels) ([]uint32, error) {
	if err := requireArgs(args, 2, "rd, value"); err != nil {
		return nil, err
	}
	rd, err := regField(args[0], labels)
	if err != nil {
		return nil, err
	}
	v, err := operand.Parse(args[1], labels, true)
	if err != nil {
		return nil, err
	}
	uv := uint32(v)
	lui, _ := opcode.Lookup("lui")
	ori, _ := opcode.Lookup("ori")
	word1 := (lui.Opcode << 26) | (rd << 16) | (uv >> 16)
	word2 := (ori.Opcode << 26) | (rd << 21) | (rd << 16) | (uv & 0xFFFF)
	return []uint32{word1, word2}, nil
}

// encodeInstruction dispatches one mnemonic line to its family encoder.
// It returns the words the line emits (almost always exactly one).
func encodeInstruction(name string, info opcode.Info, args []string, labels operand.Labels, address uint32) ([]uint32, error) {
	switch info.Family {
	case opcode.R:
		w, err := encodeR(info, args, labels)
		return one(w, err)
	case opcode.RJalr:
		w, err := encodeRJalr(info, args, labels)
		return one(w, err)
	case opcode.RShift, opcode.RShiftPlus32:
		w, err := encodeRShift(info, args, labels)
		return one(w, err)
	case opcode.RShiftV:
		w, err := encodeRShiftV(info, args, labels)
		return one(w, err)
	case opcode.RMultDiv:
		w, err := encodeRMultDiv(info, args, labels)
		return one(w, err)
	case opcode.RMfhiMflo:
		w, err := encodeRMfhiMflo(info, args, labels)
		return one(w, err)
	case opcode.RMthiMtlo:
		w, err := encodeRMthiMtlo(info, args, labels)
		return one(w, err)
	case opcode.RSyscallBreak, opcode.RSync:
		w, err := encodeRCode20(info, args, labels)
		return one(w, err)
	case opcode.RERet:
		w, err := encodeRERet(args)
		return one(w, err)
	case opcode.I:
		w, err := encodeI(info, args, labels)
		return one(w, err)
	case opcode.ILdSd:
		w, err := encodeILdSd(info, args, labels)
		return one(w, err)
	case opcode.IBranch, opcode.IBranchLikely:
		w, err := encodeBranch(info, args, labels, address)
		return one(w, err)
	case opcode.IBranchRsZero:
		w, err := encodeBranchRsZero(info, args, labels, address)
		return one(w, err)
	case opcode.IBranchRsRtFmt:
		w, err := encodeBranchRsRtFmt(info, args, labels, address)
		return one(w, err)
	case opcode.Cop0Mov:
		w, err := encodeCop0Mov(info, args, labels)
		return one(w, err)
	case opcode.IFpuLs:
		w, err := encodeIFpuLs(info, args, labels)
		return one(w, err)
	case opcode.FpuMov:
		w, err := encodeFpuMov(info, args)
		return one(w, err)
	case opcode.FpuR:
		w, err := encodeFpuR(info, args)
		return one(w, err)
	case opcode.FpuRUn:
		w, err := encodeFpuRUn(name, info, args)
		return one(w, err)
	case opcode.FpuCvt:
		w, err := encodeFpuCvt(info, args)
		return one(w, err)
	case opcode.FpuCmp:
		w, err := encodeFpuCmp(info, args)
		return one(w, err)
	case opcode.FpuBranch:
		w, err := encodeFpuBranch(info, args, labels, address)
		return one(w, err)
	case opcode.J:
		w, err := encodeJ(info, args, labels)
		return one(w, err)
	case opcode.Custom:
		w, err := encodeCustom(info, args)
		return one(w, err)
	case opcode.PseudoBranch:
		return encodePseudoBranch(args, labels, address)
	case opcode.PseudoSetreg:
		return encodePseudoSetreg(args, labels)
	default:
		return nil, fmt.Errorf("unsupported instruction family %s", info.Family)
	}
}

func one(w uint32, err error) ([]uint32, error) {
	if err != nil {
		return nil, err
	}
	return []uint32{w}, nil
}
