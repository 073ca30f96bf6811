package commands

import (
	"errors"

	"github.com/josephlewis42/mithlsh/core/kshell"
)

// Responses from read.
const (
	ReadBootSig   = "Read Sector 0 Success! Found Boot Signature (0x55AA)."
	ReadNoBootSig = "Read Sector 0 Success! (No Boot Sig)"
	ReadFailed    = "ATA Read Failed (Error Bit Set)"
)

var errNoDisk = errors.New("no disk attached")

// ReadSector0 reads the first sector of the disk and reports whether it holds
// an MBR boot signature.
func ReadSector0(in *Interpreter, cmd kshell.Command, resp *kshell.ResponseBuffer) {
	if in.Disk == nil {
		in.serviceFailure(cmd, resp, "disk", errNoDisk, ReadFailed)
		return
	}

	var sector [kshell.SectorSize]byte
	if err := in.Disk.ReadSector(0, &sector); err != nil {
		in.serviceFailure(cmd, resp, "disk", err, ReadFailed)
		return
	}

	if kshell.HasBootSignature(&sector) {
		resp.SetString(ReadBootSig)
	} else {
		resp.SetString(ReadNoBootSig)
	}
}

var _ CommandFunc = ReadSector0
