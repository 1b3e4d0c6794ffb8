package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bebop-rna/intarna-go/accessibility"
	"github.com/bebop-rna/intarna-go/constraint"
	energyparams "github.com/bebop-rna/intarna-go/energy_params"
	"github.com/bebop-rna/intarna-go/energymodel"
	"github.com/bebop-rna/intarna-go/foldengine"
	"github.com/bebop-rna/intarna-go/helix"
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/io/fasta"
	"github.com/bebop-rna/intarna-go/irange"
	"github.com/bebop-rna/intarna-go/orchestrator"
	"github.com/bebop-rna/intarna-go/output"
	"github.com/bebop-rna/intarna-go/predictor"
	"github.com/bebop-rna/intarna-go/rna"
	"github.com/bebop-rna/intarna-go/seed"
	"github.com/bebop-rna/intarna-go/shape"
)

// predictFlags declares every external interface flag named in §6: FASTA or
// literal sequence input, range subsetting, display offsets, accessibility
// windowing and constraints, SHAPE, seed parameters, energy model selection,
// output format, and thread count.
func predictFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "t", Required: true, Usage: "Target: a literal RNA sequence or a path to a FASTA file."},
		&cli.StringFlag{Name: "q", Required: true, Usage: "Query: a literal RNA sequence or a path to a FASTA file."},
		&cli.StringFlag{Name: "tRange", Usage: "Target subset range(s), 1-based \"from-to,from-to\"."},
		&cli.StringFlag{Name: "qRange", Usage: "Query subset range(s), 1-based \"from-to,from-to\"."},
		&cli.IntFlag{Name: "tIdxPos0", Usage: "Target display offset for position 1."},
		&cli.IntFlag{Name: "qIdxPos0", Usage: "Query display offset for position 1."},
		&cli.StringFlag{Name: "idHashAlgo", Value: "blake3", Usage: "Digest used to derive an id for an unnamed literal sequence: blake3 or blake2b."},
		&cli.IntFlag{Name: "accW", Usage: "Accessibility sliding window width. 0 disables windowing."},
		&cli.StringFlag{Name: "tAccFile", Usage: "Path to an RNAplfold-style unpaired-probability file for the target."},
		&cli.StringFlag{Name: "qAccFile", Usage: "Path to an RNAplfold-style unpaired-probability file for the query."},
		&cli.StringFlag{Name: "tAcc", Value: "C", Usage: "Target accessibility mode: N (disabled), C (computed)."},
		&cli.StringFlag{Name: "qAcc", Value: "C", Usage: "Query accessibility mode: N (disabled), C (computed)."},
		&cli.StringFlag{Name: "tAccConstr", Usage: "Target structural constraint string or range form."},
		&cli.StringFlag{Name: "qAccConstr", Usage: "Query structural constraint string or range form."},
		&cli.StringFlag{Name: "tShape", Usage: "Path to a target SHAPE reactivity file."},
		&cli.StringFlag{Name: "qShape", Usage: "Path to a query SHAPE reactivity file."},
		&cli.StringFlag{Name: "shapeMethod", Value: "Dm1.8b-0.6", Usage: "SHAPE conversion method code (Dm<slope>b<intercept>, Zb<beta>, or W)."},
		&cli.IntFlag{Name: "seedBP", Value: 7, Usage: "Number of base pairs required within a seed."},
		&cli.IntFlag{Name: "seedMaxUP", Value: 0, Usage: "Maximum unpaired positions overall within a seed."},
		&cli.BoolFlag{Name: "noSeed", Usage: "Disable seed-based prediction; use the unconstrained heuristic instead."},
		&cli.StringFlag{Name: "seedExplicit", Usage: "Explicit seed spec \"start1<dotbar>&start2<dotbar>\"."},
		&cli.StringFlag{Name: "m", Value: "V", Usage: "Energy model: B (base-pair-counting test double) or V (Turner nearest-neighbor)."},
		&cli.StringFlag{Name: "parameterFile", Value: "turner2004", Usage: "Named parameter set: turner2004, turner1999, andronescu2007, langdon2018."},
		&cli.Float64Flag{Name: "temperature", Value: 37.0, Usage: "Folding temperature in degrees Celsius."},
		&cli.IntFlag{Name: "maxIntLoop1", Value: 16, Usage: "Maximum target-side interior loop gap."},
		&cli.IntFlag{Name: "maxIntLoop2", Value: 16, Usage: "Maximum query-side interior loop gap."},
		&cli.IntFlag{Name: "maxWindowLen", Usage: "Maximum window length for sweeping long sequences. 0 disables decomposition."},
		&cli.IntFlag{Name: "windowOverlap", Value: 10, Usage: "Overlap between consecutive sweep windows."},
		&cli.StringFlag{Name: "mode", Value: "H", Usage: "Prediction mode: M (exact 4D), S (exact 2D), H (heuristic 2D), X (seed extension), XH (heuristic seed extension), SO (seed only), E (ensemble), HB (helix block)."},
		&cli.IntFlag{Name: "outNumber", Value: 1, Usage: "Number of best non-overlapping interactions to report."},
		&cli.StringFlag{Name: "n", Value: "N", Usage: "Output style: N (text), D (detailed), E (ensemble), C (csv)."},
		&cli.StringFlag{Name: "outCsvCols", Value: "id1,id2,start1,end1,start2,end2,E,hybridDP,bpList,seedE", Usage: "Comma-separated CSV columns when -n C."},
		&cli.StringFlag{Name: "out", Usage: "Output file path. Defaults to stdout."},
		&cli.IntFlag{Name: "threads", Value: 1, Usage: "Number of worker threads for the target x query sweep."},
		&cli.StringFlag{Name: "parallelizeOver", Value: "queries", Usage: "Which loop to parallelize: targets, queries, or windows."},
	}
}

// predictCommand runs one full Orchestrator sweep per the flags in c and
// writes the results through the selected output.Handler.
func predictCommand(c *cli.Context) error {
	hashAlgo, err := parseHashAlgo(c.String("idHashAlgo"))
	if err != nil {
		return fmt.Errorf("intarna: %w", err)
	}
	target, err := loadSequences(c.String("t"), c.Int("tIdxPos0"), hashAlgo)
	if err != nil {
		return fmt.Errorf("intarna: loading target: %w", err)
	}
	target, err = applyRange(target, c.String("tRange"))
	if err != nil {
		return fmt.Errorf("intarna: applying tRange: %w", err)
	}
	query, err := loadSequences(c.String("q"), c.Int("qIdxPos0"), hashAlgo)
	if err != nil {
		return fmt.Errorf("intarna: loading query: %w", err)
	}
	query, err = applyRange(query, c.String("qRange"))
	if err != nil {
		return fmt.Errorf("intarna: applying qRange: %w", err)
	}

	model, err := buildModel(c)
	if err != nil {
		return fmt.Errorf("intarna: building energy model: %w", err)
	}

	outHandler, closeOut, err := buildOutputHandler(c)
	if err != nil {
		return fmt.Errorf("intarna: building output handler: %w", err)
	}
	defer closeOut()

	parOver, err := parseParallelizeOver(c.String("parallelizeOver"))
	if err != nil {
		return fmt.Errorf("intarna: %w", err)
	}

	cfg := orchestrator.Config{
		Model:           model,
		MaxIntLoop1:     c.Int("maxIntLoop1"),
		MaxIntLoop2:     c.Int("maxIntLoop2"),
		AccWindow:       c.Int("accW"),
		RT:              model.RT(),
		MaxWindowLen:    c.Int("maxWindowLen"),
		WindowOverlap:   c.Int("windowOverlap"),
		Threads:         c.Int("threads"),
		ParallelizeOver: parOver,
		Predict: func(energy *interaction.Energy, rangeT, rangeQ irange.Range) ([]*interaction.Interaction, error) {
			return runOnePredictor(c, energy, rangeT, rangeQ)
		},
		BuildAccessibility: func(seq *rna.Sequence) (accessibility.Accessibility, error) {
			return buildAccessibilityFor(c, seq, model, target)
		},
	}

	o := &orchestrator.Orchestrator{Targets: target, Queries: query, Config: cfg}
	results, runErr := o.Run(context.Background())
	for _, res := range results {
		for _, inter := range res.Interactions {
			if err := outHandler.Emit(inter); err != nil {
				return fmt.Errorf("intarna: emitting result: %w", err)
			}
		}
	}
	return runErr
}

// buildAccessibilityFor picks which side's (target vs query) constraint,
// SHAPE, and accessibility-file flags apply to seq by identity: seq is one
// of Orchestrator's own Targets/Queries slice elements, so a pointer scan
// against the target slice reliably distinguishes the two sides even when
// a sequence is used as both its own target and query.
func buildAccessibilityFor(c *cli.Context, seq *rna.Sequence, model energymodel.Model, targets []*rna.Sequence) (accessibility.Accessibility, error) {
	isTarget := false
	for _, t := range targets {
		if t == seq {
			isTarget = true
			break
		}
	}
	if isTarget {
		return buildAccessibility(seq, model, c.String("tAcc"), c.String("tAccFile"), c.String("tAccConstr"), c.String("tShape"), c.String("shapeMethod"), c.Int("accW"))
	}
	return buildAccessibility(seq, model, c.String("qAcc"), c.String("qAccFile"), c.String("qAccConstr"), c.String("qShape"), c.String("shapeMethod"), c.Int("accW"))
}

// loadSequences treats raw as a FASTA path if it names an existing file,
// and otherwise as a single literal RNA sequence. algo only matters for
// records without an id (a bare literal sequence; FASTA records always
// carry their own name).
func loadSequences(raw string, idxPos0 int, algo rna.HashAlgo) ([]*rna.Sequence, error) {
	if _, err := os.Stat(raw); err == nil {
		records, err := fasta.Read(raw)
		if err != nil {
			return nil, err
		}
		seqs := make([]*rna.Sequence, 0, len(records))
		for _, rec := range records {
			seq, err := rna.NewSequenceWithHashAlgo(rec.Name, rec.Sequence, idxPos0, algo)
			if err != nil {
				return nil, err
			}
			seqs = append(seqs, seq)
		}
		return seqs, nil
	}
	seq, err := rna.NewSequenceWithHashAlgo("", raw, idxPos0, algo)
	if err != nil {
		return nil, err
	}
	return []*rna.Sequence{seq}, nil
}

// parseHashAlgo maps the --idHashAlgo flag value to rna.HashAlgo.
func parseHashAlgo(name string) (rna.HashAlgo, error) {
	switch strings.ToLower(name) {
	case "", "blake3":
		return rna.HashBlake3, nil
	case "blake2b":
		return rna.HashBlake2b, nil
	default:
		return 0, fmt.Errorf("unknown idHashAlgo %q", name)
	}
}

// applyRange restricts every sequence in seqs to the first subrange named
// by rangeFlag (1-based "from-to,from-to..."), leaving seqs untouched when
// rangeFlag is empty. The display offset shifts by the subrange's start so
// DisplayIndex still reports positions relative to the original sequence.
func applyRange(seqs []*rna.Sequence, rangeFlag string) ([]*rna.Sequence, error) {
	if strings.TrimSpace(rangeFlag) == "" {
		return seqs, nil
	}
	out := make([]*rna.Sequence, 0, len(seqs))
	for _, seq := range seqs {
		ranges, err := irange.ParseRanges(rangeFlag, seq.Len())
		if err != nil {
			return nil, err
		}
		r := ranges[0]
		sub, err := rna.NewSequence(seq.ID(), seq.String()[r.From:r.To+1], seq.DisplayIndex(r.From))
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

func buildModel(c *cli.Context) (energymodel.Model, error) {
	if strings.EqualFold(c.String("m"), "B") {
		return energymodel.NewBasePairModel(), nil
	}
	set, err := parseParameterSet(c.String("parameterFile"))
	if err != nil {
		return nil, err
	}
	return energymodel.NewNearestNeighborModel(set, c.Float64("temperature")), nil
}

func parseParameterSet(name string) (energyparams.EnergyParamsSet, error) {
	switch strings.ToLower(name) {
	case "turner2004":
		return energyparams.Turner2004, nil
	case "turner1999":
		return energyparams.Turner1999, nil
	case "andronescu2007":
		return energyparams.Andronescu2007, nil
	case "langdon2018":
		return energyparams.Langdon2018, nil
	default:
		return 0, fmt.Errorf("unknown parameterFile %q", name)
	}
}

func parseParallelizeOver(s string) (orchestrator.ParallelizeOver, error) {
	switch strings.ToLower(s) {
	case "targets":
		return orchestrator.ParallelizeOverTargets, nil
	case "queries":
		return orchestrator.ParallelizeOverQueries, nil
	case "windows":
		return orchestrator.ParallelizeOverWindows, nil
	default:
		return 0, fmt.Errorf("unknown parallelizeOver %q", s)
	}
}

// buildAccessibility constructs the Accessibility implementation for one
// sequence according to its constraint/SHAPE/file/mode flags.
func buildAccessibility(seq *rna.Sequence, model energymodel.Model, accMode, accFile, constrFlag, shapeFile, shapeMethodCode string, accW int) (accessibility.Accessibility, error) {
	n := seq.Len()
	var constr *constraint.Constraint
	if constrFlag != "" {
		c, err := constraint.ParseConstraint(constrFlag, n)
		if err != nil {
			return nil, fmt.Errorf("parsing constraint: %w", err)
		}
		constr = c
	}
	if shapeFile != "" {
		method, err := shape.ParseMethod(shapeMethodCode)
		if err != nil {
			return nil, fmt.Errorf("parsing shape method: %w", err)
		}
		reactivity, err := shape.ReactivityFromFile(shapeFile)
		if err != nil {
			return nil, fmt.Errorf("reading shape file: %w", err)
		}
		if constr == nil {
			constr, err = constraint.ParseConstraint(strings.Repeat(".", n), n)
			if err != nil {
				return nil, err
			}
		}
		if err := constr.AttachShape(shape.ToPseudoEnergy(reactivity, n, method)); err != nil {
			return nil, fmt.Errorf("attaching shape energies: %w", err)
		}
	}

	if accFile != "" {
		table, err := accessibility.LoadProbabilitiesFile(accFile, n)
		if err != nil {
			return nil, fmt.Errorf("loading accessibility file: %w", err)
		}
		return accessibility.NewFromProbabilities(seq, table, accW, model.RT(), constr), nil
	}

	switch strings.ToUpper(accMode) {
	case "N":
		if constr != nil {
			return accessibility.NewBasePair(seq, constr), nil
		}
		return accessibility.NewDisabled(seq), nil
	default:
		engine := foldengine.NewEngine(model)
		return accessibility.NewComputed(seq, engine, accW, model.RT(), constr)
	}
}

// runOnePredictor dispatches to the concrete predictor.Predictor named by
// -mode, runs it over rangeT x rangeQ, and returns its best interactions.
func runOnePredictor(c *cli.Context, energy *interaction.Energy, rangeT, rangeQ irange.Range) ([]*interaction.Interaction, error) {
	k := c.Int("outNumber")
	mode := strings.ToUpper(c.String("mode"))
	if c.Bool("noSeed") && (mode == "X" || mode == "XH" || mode == "SO") {
		mode = "H"
	}

	needsSeed := mode == "X" || mode == "XH" || mode == "SO"
	var seedHandler seed.Handler
	if needsSeed {
		if explicit := c.String("seedExplicit"); explicit != "" {
			h, err := seed.NewExplicitHandler(energy, explicit)
			if err != nil {
				return nil, fmt.Errorf("parsing seedExplicit: %w", err)
			}
			seedHandler = h
		} else {
			sc := &seed.Constraint{BP: c.Int("seedBP"), MaxUnpOverall: c.Int("seedMaxUP")}
			if err := sc.Validate(); err != nil {
				return nil, fmt.Errorf("seed constraint: %w", err)
			}
			seedHandler = seed.NewHandler(sc, energy)
		}
		if _, err := seedHandler.Fill(rangeT.From, rangeT.To, rangeQ.From, rangeQ.To); err != nil {
			return nil, fmt.Errorf("filling seeds: %w", err)
		}
	}

	var p predictor.Predictor
	switch mode {
	case "M":
		p = predictor.NewMfe4D(energy, k)
	case "S":
		p = predictor.NewMfe2D(energy, k)
	case "H":
		p = predictor.NewMfe2DHeuristic(energy, k)
	case "X":
		p = predictor.NewSeedExtension(energy, seedHandler, k, true)
	case "XH":
		p = predictor.NewSeedExtensionHeuristic(energy, seedHandler, k, true)
	case "SO":
		p = predictor.NewSeedOnly(energy, seedHandler, k)
	case "E":
		p = predictor.NewEnsemble(energy, k)
	case "HB":
		hc := &helix.Constraint{MinBP: 2, MaxBP: c.Int("seedBP")}
		if err := hc.Validate(); err != nil {
			return nil, fmt.Errorf("helix constraint: %w", err)
		}
		handler := helix.NewHandler(hc, energy)
		if _, err := handler.Fill(rangeT.From, rangeT.To, rangeQ.From, rangeQ.To); err != nil {
			return nil, fmt.Errorf("filling helix blocks: %w", err)
		}
		p = predictor.NewHelixBlock(energy, handler, k)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	if err := p.Predict(rangeT, rangeQ); err != nil {
		return nil, err
	}
	return p.Results(), nil
}

// buildOutputHandler constructs the selected output.Handler over the
// configured sink, returning a close func the caller always invokes.
func buildOutputHandler(c *cli.Context) (output.Handler, func() error, error) {
	w := os.Stdout
	var f *os.File
	if path := c.String("out"); path != "" {
		var err error
		f, err = os.Create(path)
		if err != nil {
			return nil, nil, err
		}
		w = f
	}
	closeFn := func() error {
		if f != nil {
			return f.Close()
		}
		return nil
	}

	switch strings.ToUpper(c.String("n")) {
	case "N":
		h := output.NewText(w)
		return h, wrapClose(h, closeFn), nil
	case "D":
		h := output.NewDetailed(w)
		return h, wrapClose(h, closeFn), nil
	case "E":
		h := output.NewEnsemble(w, nil)
		return h, wrapClose(h, closeFn), nil
	case "C":
		columns := strings.Split(c.String("outCsvCols"), ",")
		h := output.NewCSV(w, columns, ",", "|")
		return h, wrapClose(h, closeFn), nil
	default:
		closeFn()
		return nil, nil, fmt.Errorf("unknown output style %q", c.String("n"))
	}
}

func wrapClose(h output.Handler, closeFile func() error) func() error {
	return func() error {
		err := h.Close()
		if fErr := closeFile(); err == nil {
			err = fErr
		}
		return err
	}
}
