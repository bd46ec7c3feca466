//go:build tamago

package main

// jump resets the stack pointer and branches to entry. It does not return.
//
//go:nosplit
func jump(entry uint32)

// wfi parks the core until an interrupt fires.
//
//go:nosplit
func wfi()
