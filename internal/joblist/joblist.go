// Package joblist reads the paired line-oriented job list files: one file
// of input image paths and one of output folder paths, aligned by line.
package joblist

import (
	"bufio"
	"os"
	"strings"

	"github.com/google/uuid"

	"imagetiler/internal/core/domain"
)

// Read builds the job list from the two path files. Line pairs where either
// side is blank are skipped; a length mismatch truncates to the shorter
// file. Unopenable files are configuration errors.
func Read(inputsFile, outputsFile string) ([]domain.Job, error) {
	inputs, err := os.Open(inputsFile)
	if err != nil {
		return nil, domain.NewConfigError("cannot open input file %s: %w", inputsFile, err)
	}
	defer inputs.Close()

	outputs, err := os.Open(outputsFile)
	if err != nil {
		return nil, domain.NewConfigError("cannot open output file %s: %w", outputsFile, err)
	}
	defer outputs.Close()

	var jobs []domain.Job
	inScan := bufio.NewScanner(inputs)
	outScan := bufio.NewScanner(outputs)

	for inScan.Scan() && outScan.Scan() {
		inputPath := strings.TrimSpace(inScan.Text())
		outputPath := strings.TrimSpace(outScan.Text())
		if inputPath == "" || outputPath == "" {
			continue
		}
		jobs = append(jobs, domain.Job{
			ID:         uuid.New().String(),
			InputPath:  inputPath,
			OutputPath: outputPath,
			Index:      len(jobs),
		})
	}

	if err := inScan.Err(); err != nil {
		return nil, domain.NewConfigError("failed to read %s: %w", inputsFile, err)
	}
	if err := outScan.Err(); err != nil {
		return nil, domain.NewConfigError("failed to read %s: %w", outputsFile, err)
	}

	return jobs, nil
}
