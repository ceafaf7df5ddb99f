package benchmark

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/report"
	"github.com/cipherbench/go-harness/workload"
)

// BuildDescription renders the report path and description header of a
// matched benchmark. workloadDetail carries family-specific header rows
// appended after the workload block; it may be empty.
func BuildDescription(s Session, id provider.DescriptorID, desc *workload.Descriptor, params []workload.Param, workloadName, workloadDetail string) Description {
	schemeName := s.SchemeName(desc.Scheme)
	securityName := s.SecurityName(desc.Scheme, desc.Security)

	return Description{
		WorkloadName: workloadName,
		Path:         buildPath(desc, params, workloadName, schemeName, securityName),
		Header:       buildHeader(s, id, desc, params, workloadName, workloadDetail, schemeName, securityName),
	}
}

func buildPath(desc *workload.Descriptor, params []workload.Param, workloadName, schemeName, securityName string) string {
	var wp strings.Builder
	wp.WriteString("wp")
	for _, p := range params {
		wp.WriteString("_")
		wp.WriteString(p.FormatValue())
	}

	segments := []string{
		report.ToDirectoryName(fmt.Sprintf("%s_%d", workloadName, uint32(desc.Workload)), true),
		report.ToDirectoryName(wp.String(), true),
		report.ToDirectoryName(desc.Category.String(), true),
		report.ToDirectoryName(desc.DataType.String(), true),
		catParamSegment(desc),
		cipherMaskSegment(desc.CipherMask),
		report.ToDirectoryName(schemeName, true),
		report.ToDirectoryName(securityName, true),
		fmt.Sprintf("%d", desc.Other),
	}
	return filepath.Join(segments...)
}

// catParamSegment concatenates the raw category parameter values with
// trailing zeros dropped, or "default" when every value is zero.
func catParamSegment(desc *workload.Descriptor) string {
	raw := desc.CatParams.Raw(desc.Category)
	last := len(raw)
	for last > 0 && raw[last-1] == 0 {
		last--
	}
	if last == 0 {
		return "default"
	}
	var b strings.Builder
	for _, v := range raw[:last] {
		fmt.Fprintf(&b, "%d", v)
	}
	return b.String()
}

// cipherMaskSegment renders which operands are ciphertext: "all_plain",
// "all_cipher", or one 'c'/'p' per operand position up to the highest
// ciphertext operand.
func cipherMaskSegment(mask uint32) string {
	positions := workload.CipherParamPositions(mask)
	if len(positions) == 0 {
		return "all_plain"
	}
	if len(positions) >= 32 {
		return "all_cipher"
	}
	max := positions[len(positions)-1]
	var b strings.Builder
	for i := 0; i <= max; i++ {
		if mask&(1<<uint(i)) != 0 {
			b.WriteByte('c')
		} else {
			b.WriteByte('p')
		}
	}
	return b.String()
}

func buildHeader(s Session, id provider.DescriptorID, desc *workload.Descriptor, params []workload.Param, workloadName, workloadDetail, schemeName, securityName string) string {
	var h strings.Builder
	h.WriteString("Specifications,\n")
	h.WriteString(", Encryption, \n")
	fmt.Fprintf(&h, ", , Scheme, %s\n", schemeName)
	fmt.Fprintf(&h, ", , Security, %s\n", securityName)
	fmt.Fprintf(&h, ", Extra, %d\n", desc.Other)
	if extra := s.ExtraDescription(id, params); extra != "" {
		h.WriteString(extra)
	}
	h.WriteString("\n\n")

	fmt.Fprintf(&h, ", Category, %s\n", desc.Category)
	switch desc.Category {
	case workload.Latency:
		fmt.Fprintf(&h, ", , Warmup iterations, %d\n", desc.CatParams.Latency.WarmupIterations)
		fmt.Fprintf(&h, ", , Minimum test time requested (ms), %d\n", desc.CatParams.Latency.MinTestTimeMS)
	case workload.Offline:
		h.WriteString(", , Parameter, Samples requested\n")
		allZero := true
		for i, count := range desc.CatParams.Offline.DataCounts {
			if count != 0 {
				allZero = false
				fmt.Fprintf(&h, ", , %d, %d\n", i, count)
			}
		}
		if allZero {
			h.WriteString(", , All, 0\n")
		}
	}

	fmt.Fprintf(&h, "\n, Workload, %s\n", workloadName)
	fmt.Fprintf(&h, ", , Data type, %s\n", desc.DataType)
	h.WriteString(", , Encrypted op parameters (index)")
	positions := workload.CipherParamPositions(desc.CipherMask)
	switch {
	case len(positions) == 0:
		h.WriteString(", None\n")
	case len(positions) >= 32:
		h.WriteString(", All\n")
	default:
		for _, p := range positions {
			fmt.Fprintf(&h, ", %d", p)
		}
		h.WriteString("\n")
	}
	if workloadDetail != "" {
		h.WriteString(workloadDetail)
	}
	return h.String()
}
