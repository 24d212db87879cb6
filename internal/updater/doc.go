// Package updater runs one read-modify-write of a Genie space.
//
// Flow:
//
//	validate -> [resolve first space] -> fetch -> decode -> append -> encode -> patch
//
// Nothing is sent before validation passes, and nothing is patched unless the
// fetch and decode succeeded. A lookup miss still patches the unchanged document.
package updater
