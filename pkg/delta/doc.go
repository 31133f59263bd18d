// Package delta implements rdiff-style content differencing. A sender that
// holds only a compact signature of an original buffer can compute, from a
// modified buffer, an edit script of insert and remove operations that a
// receiver holding the original can apply to reconstruct the modification.
//
// Signatures pair a 32-bit rolling checksum with a truncated BLAKE2b-512
// digest per fixed-size block of the original. Diffing slides a block-sized
// window over the target one byte at a time, maintaining the rolling checksum
// incrementally, probing the signature index at each position, and confirming
// candidate matches with the strong hash.
//
// The edit script references base blocks strictly in order. If the target
// reorders blocks of the base, the out-of-order occurrence is not matched and
// degrades into an insert and remove pair; this is inherent to the script
// format, not a defect of the scan.
package delta
