package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"refx/archive"
	"refx/pdf"
	"refx/refs"
	"refx/state"
)

type input struct {
	name string
	open func() (io.ReadCloser, error)
}

// Run is the extract subcommand action. A single input produces a JSON array
// of references on stdout; multiple inputs produce JSON Lines, one object
// per file. Per-file failures are logged, written as error records in JSON
// Lines mode, and make the whole run exit non-zero, but never stop the batch.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("extract")

	if cmd.NArg() == 0 {
		return errors.New("no input source has been specified")
	}

	env.Pretty = cmd.Bool("pretty")
	env.DebugLayout = cmd.Bool("debug-layout")
	if cmd.Bool("no-footnotes") {
		env.Cfg.Extraction.Footnotes = false
	}
	if cmd.Bool("ocr-fallback") {
		env.Cfg.Extraction.OCRFallback = true
	}
	if cmd.Bool("no-doi-lookup") {
		env.Cfg.DOI.Enable = false
	}

	var inputs []input
	for _, arg := range cmd.Args().Slice() {
		walkErr := archive.Walk(arg, func(path string, open func() (io.ReadCloser, error)) error {
			inputs = append(inputs, input{name: path, open: open})
			return nil
		})
		if walkErr != nil {
			return fmt.Errorf("unable to resolve input %q: %w", arg, walkErr)
		}
	}
	if len(inputs) == 0 {
		return errors.New("no PDF files found in the given inputs")
	}

	var enricher *DOIEnricher
	if env.Cfg.DOI.Enable {
		if enricher, err = NewDOIEnricher(env.Cfg.DOI, log); err != nil {
			// enrichment is optional, the extraction is not
			log.Warn("doi enrichment disabled", zap.Error(err))
			enricher = nil
		} else {
			defer func() {
				err = multierr.Append(err, enricher.Close())
			}()
		}
	}

	out := newWriter(env.Pretty, len(inputs) == 1)
	failed := 0
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		references, procErr := runOne(ctx, in, enricher, env, log)
		if procErr != nil {
			failed++
			log.Error("document failed", zap.String("file", in.name), zap.Error(procErr))
			if werr := out.writeError(in.name, procErr); werr != nil {
				return werr
			}
			continue
		}
		if werr := out.writeResult(in.name, references); werr != nil {
			return werr
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to parse", failed, len(inputs))
	}
	return nil
}

// runOne processes one input under the configured per-document deadline.
func runOne(ctx context.Context, in input, enricher *DOIEnricher, env *state.LocalEnv, log *zap.Logger) ([]refs.Reference, error) {
	if timeout := env.Cfg.Extraction.DocumentTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	doc, err := openInput(in)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	start := time.Now()
	references, err := processDocument(ctx, doc, in.name, env, log)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("document timed out after %s", time.Since(start).Round(time.Millisecond))
		}
		return nil, err
	}

	if enricher != nil {
		for i := range references {
			if references[i].DOI != "" {
				continue
			}
			references[i].DOI = enricher.Lookup(ctx, references[i].RawRef)
		}
	}
	return references, nil
}

// openInput opens a filesystem path directly and archive members through
// their content stream.
func openInput(in input) (*pdf.Document, error) {
	rc, err := in.open()
	if err != nil {
		return nil, err
	}
	if f, ok := rc.(interface{ Name() string }); ok {
		rc.Close()
		return pdf.Open(f.Name())
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return pdf.OpenBytes(data)
}
