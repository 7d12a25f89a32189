// Package eurostat knows the shape of the raw road-freight TSV datasets and
// reshapes them into tidy form.
package eurostat

import (
	_ "embed"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/freightdata/roadcheck/pkg/frame"
)

const (
	TimeColumn  = "TIME_PERIOD"
	ValueColumn = "value"
)

// NAValues are the missing-observation sentinels Eurostat uses in its
// bulk-download TSV files.
var NAValues = []string{": ", ": z", ": u"}

//go:embed datasets.yml
var datasetsYAML []byte

// Dataset describes one raw source file: where it lives, the compound key
// column its header carries, and the semantic names of the key fields.
type Dataset struct {
	Name        string   `yaml:"name"`
	File        string   `yaml:"file"`
	Description string   `yaml:"description"`
	Compound    string   `yaml:"compound"`
	Keys        []string `yaml:"keys"`
}

type datasetList struct {
	Datasets []Dataset `yaml:"datasets"`
}

// Datasets returns the built-in descriptors for the three road-freight
// sources.
func Datasets() ([]Dataset, error) {
	var list datasetList
	if err := yaml.Unmarshal(datasetsYAML, &list); err != nil {
		return nil, errors.Wrap(err, "failed to parse the embedded dataset descriptors")
	}

	return list.Datasets, nil
}

func DatasetByName(name string) (Dataset, error) {
	datasets, err := Datasets()
	if err != nil {
		return Dataset{}, err
	}

	d, found := lo.Find(datasets, func(d Dataset) bool { return d.Name == name })
	if !found {
		names := lo.Map(datasets, func(d Dataset, _ int) string { return d.Name })
		return Dataset{}, errors.Errorf("unknown dataset %q, expected one of %v", name, names)
	}

	return d, nil
}

// Reshape turns a raw wide table into tidy form: the compound first column
// is split into the dataset's key fields, then every year column becomes one
// row carrying TIME_PERIOD and value.
func Reshape(f *frame.Frame, d Dataset) (*frame.Frame, error) {
	split, err := f.SplitColumn(d.Compound, ",", d.Keys)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to split the compound column of dataset %q", d.Name)
	}

	melted, err := split.Melt(d.Keys, TimeColumn, ValueColumn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to melt dataset %q", d.Name)
	}

	return melted, nil
}

// Load reads the dataset's TSV from dir/data and reshapes it.
func Load(fs afero.Fs, dir string, d Dataset) (*frame.Frame, error) {
	path := filepath.Join(dir, "data", d.File)
	file, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	raw, err := frame.ReadTSV(file, frame.ReadOptions{NAValues: NAValues})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	return Reshape(raw, d)
}
