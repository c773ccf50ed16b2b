/*

Process of translation

arm64 Instructions ([]arm64.Instr) ->
	lower (one instruction at a time) ->
		map registers ->
		legalize immediate (materialize into T0 if it doesn't fit) ->
		apply shift or extend to the source register ->
		emit opcode rule ->
		emulate flags (T3 = Z, T4 = N, T5 = C) ->
riscv Instructions ([]riscv.Instr) ->
	format ->
Assembly Listing

Labels are left symbolic for the linker.

*/
package compiler
