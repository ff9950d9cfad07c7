// internal/runner/assembler.go
package runner

import (
	"fmt"

	"github.com/valpere/ProductHarvester/internal/extract"
	"github.com/valpere/ProductHarvester/internal/ledger"
	"github.com/valpere/ProductHarvester/internal/utils"
)

// DatasetSink receives the finished batch. Satisfied by output.Manager.
type DatasetSink interface {
	WriteDataset(records []*extract.ProductRecord) error
	WriteFailures(urls []string) error
}

// Assembler turns a collector's contents into run artifacts: the dataset,
// the failed-links file, and the ledger append. The ledger is updated only
// after the dataset is safely on disk.
type Assembler struct {
	sink      DatasetSink
	processed *ledger.ProcessedSet
	log       utils.Logger
}

// NewAssembler creates an assembler writing through sink.
func NewAssembler(sink DatasetSink, processed *ledger.ProcessedSet, log utils.Logger) *Assembler {
	return &Assembler{
		sink:      sink,
		processed: processed,
		log:       log,
	}
}

// Assemble persists the batch. A run with zero successes still writes its
// failed-links artifact.
func (a *Assembler) Assemble(collector *Collector) error {
	records := collector.Records()
	failures := collector.Failures()

	if len(records) > 0 {
		if err := a.sink.WriteDataset(records); err != nil {
			return fmt.Errorf("failed to write dataset: %w", err)
		}
		a.log.Infof("wrote %d product records", len(records))
	} else {
		a.log.Warnf("no products scraped, dataset not written")
	}

	if len(failures) > 0 {
		urls := make([]string, len(failures))
		for i, f := range failures {
			urls[i] = f.URL
		}
		if err := a.sink.WriteFailures(urls); err != nil {
			return fmt.Errorf("failed to write failed links: %w", err)
		}
		a.log.Warnf("recorded %d failed links", len(failures))
	}

	if a.processed != nil && len(records) > 0 {
		scraped := make([]string, len(records))
		for i, rec := range records {
			scraped[i] = rec.SourceURL
		}
		if err := a.processed.AppendAll(scraped); err != nil {
			return fmt.Errorf("failed to update ledger: %w", err)
		}
	}

	return nil
}
