// Package bioos implements a miniature operating-system-shaped simulation
// kernel for populations of simulated organisms. Each organism is tracked
// like an OS process with genes, proteins, energy and age, and advanced
// tick-by-tick under a priority scheduler, a capacity-bound memory manager
// and a chronological event dispatcher.
package bioos
