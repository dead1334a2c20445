package feed

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
)

// ExtractMember читает файл name из zip-архива в памяти.
// Пустое name — первый файл архива. Имя сравнивается без учёта регистра и каталогов.
func ExtractMember(archive []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if name != "" && !strings.EqualFold(path.Base(f.Name), name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		return data, nil
	}

	if name == "" {
		return nil, fmt.Errorf("zip archive is empty")
	}
	return nil, fmt.Errorf("file %q not found in zip archive", name)
}
