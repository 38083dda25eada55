// Package device holds the office-device variants of the interface
// segregation kata. Printing and scanning are separate capabilities; a device
// that cannot scan simply has no Scan method.
package device

import (
	"fmt"

	"github.com/ainaplanass/exam/capability"
)

// Printer prints documents.
type Printer interface {
	Print(document string) string
}

// Scanner scans documents.
type Scanner interface {
	Scan() string
}

// MultiFunction is the composition of Printer and Scanner.
type MultiFunction interface {
	Printer
	Scanner
}

// SimplePrinter only prints.
type SimplePrinter struct{}

func (SimplePrinter) Print(document string) string {
	return fmt.Sprintf("Imprimiendo documento: %s", document)
}

// SimpleScanner only scans.
type SimpleScanner struct{}

func (SimpleScanner) Scan() string { return "Escaneando documento..." }

// AdvancedPrinter prints and scans.
type AdvancedPrinter struct{}

func (AdvancedPrinter) Print(document string) string {
	return fmt.Sprintf("Imprimiendo documento: %s", document)
}

func (AdvancedPrinter) Scan() string { return "Escaneando documento..." }

// Contracts returns the device capability contracts.
func Contracts() []capability.Contract {
	return []capability.Contract{
		capability.ContractFor[Printer]("printable", "Prints a document"),
		capability.ContractFor[Scanner]("scannable", "Scans a document"),
		capability.ContractFor[MultiFunction]("multifunction", "Prints and scans"),
	}
}

// Register adds the device contracts and variants to reg.
func Register(reg *capability.Registry) error {
	return reg.Populate(Contracts(), map[string]any{
		"simple-printer":   SimplePrinter{},
		"simple-scanner":   SimpleScanner{},
		"advanced-printer": AdvancedPrinter{},
	})
}

// PrintAll prints doc on every printer.
func PrintAll(printers []Printer, doc string) []string {
	out := make([]string, len(printers))
	for i, p := range printers {
		out[i] = p.Print(doc)
	}
	return out
}
