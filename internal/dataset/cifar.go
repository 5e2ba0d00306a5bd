package dataset

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// CIFAR-10 binary record layout:
//
//	label: 1 byte (0-9)
//	red plane: 1024 bytes (32x32, row-major)
//	green plane: 1024 bytes
//	blue plane: 1024 bytes
const (
	cifarSide       = 32
	cifarPlane      = cifarSide * cifarSide
	cifarRecordSize = 1 + 3*cifarPlane
)

// LoadCIFAR10 reads up to limit images from CIFAR-10 binary batch files and
// returns them as [N, 32, 32, 3] in [0, 1]. Labels are discarded. A limit
// <= 0 reads everything.
func LoadCIFAR10(limit int, paths ...string) (*Images, error) {
	var data []float32
	n := 0
	for _, path := range paths {
		read, err := readCIFARFile(path, limit-n, limit > 0, &data)
		if err != nil {
			return nil, err
		}
		n += read
		if limit > 0 && n >= limit {
			break
		}
	}
	if n == 0 {
		return nil, errors.Errorf("no CIFAR-10 records in %v", paths)
	}
	return &Images{N: n, H: cifarSide, W: cifarSide, C: 3, Data: data}, nil
}

func readCIFARFile(path string, remaining int, limited bool, data *[]float32) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "open CIFAR-10 batch")
	}
	defer file.Close()

	n, err := DecodeCIFAR10(bufio.NewReader(file), remaining, limited, data)
	if err != nil {
		return n, errors.Wrapf(err, "read %s", path)
	}
	return n, nil
}

// DecodeCIFAR10 appends records from r to data in NHWC order until EOF or,
// when limited, until remaining records have been read. It returns the number
// of records decoded.
func DecodeCIFAR10(r io.Reader, remaining int, limited bool, data *[]float32) (int, error) {
	record := make([]byte, cifarRecordSize)
	n := 0
	for !limited || n < remaining {
		if _, err := io.ReadFull(r, record); err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, errors.Wrapf(err, "record %d", n)
		}
		planes := record[1:]
		for p := 0; p < cifarPlane; p++ {
			*data = append(*data,
				float32(planes[p])/255,
				float32(planes[cifarPlane+p])/255,
				float32(planes[2*cifarPlane+p])/255,
			)
		}
		n++
	}
	return n, nil
}
