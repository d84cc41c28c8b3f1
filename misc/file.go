package misc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrNoFileName = errors.New("no filename supplied")

func ReadFile(fileName string) ([]byte, error) {
	if fileName == "" {
		return nil, ErrNoFileName
	}
	fileBytes, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s - %w", fileName, err)
	}
	return fileBytes, nil
}

// WriteFile writes contents next to fileName first and renames it into place, so a failed write never leaves a
// truncated file behind.
func WriteFile(fileName string, contents []byte) (int, error) {
	if fileName == "" {
		return 0, ErrNoFileName
	}
	// create a temporary file in the destination directory so the rename stays on one filesystem
	file, err := os.CreateTemp(filepath.Dir(fileName), "."+filepath.Base(fileName)+".*")
	if err != nil {
		return 0, fmt.Errorf("unable to create file %s - %w", fileName, err)
	}
	tempName := file.Name()

	bytesWritten, err := file.Write(contents)
	if err != nil {
		file.Close()
		os.Remove(tempName)
		return bytesWritten, fmt.Errorf("unable to write file %s - %w", fileName, err)
	}
	err = file.Close()
	if err != nil {
		os.Remove(tempName)
		return bytesWritten, fmt.Errorf("unable to close file %s - %w", fileName, err)
	}
	err = os.Rename(tempName, fileName)
	if err != nil {
		os.Remove(tempName)
		return bytesWritten, fmt.Errorf("unable to move file into place %s - %w", fileName, err)
	}

	return bytesWritten, nil
}

// EnsureDir creates path (and any parents) if it does not exist yet.
func EnsureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		err = os.MkdirAll(path, os.ModePerm)
		if err != nil {
			return fmt.Errorf("unable to create folder %s - %w", path, err)
		}
	}
	return nil
}
