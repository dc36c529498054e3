// Package vm implements the ActionScript execution engine.
//
// This package contains:
//   - The class table (class name -> prototype) owned by a Domain
//   - The object model: host-bridged objects backed by Go values and
//     scripted objects defined by the program
//   - Static host member tables (HostType) used instead of reflection
//   - The recursive interpreter over abc expression graphs
//   - Typed faults for failures that do not stop execution
package vm
