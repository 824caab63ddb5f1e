package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PalletStack/internal/engine"
	"github.com/piwi3910/PalletStack/internal/geometry"
	"github.com/piwi3910/PalletStack/internal/importer"
	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/piwi3910/PalletStack/internal/project"
	"github.com/piwi3910/PalletStack/internal/validation"
)

// ErrInvalidLoad is returned by validate when any rule reports an error.
var ErrInvalidLoad = errors.New("load breaks one or more rules")

const (
	defaultPalletGap      = 50    // mm between arranged stacks
	defaultTruckMaxWeight = 24000 // kg, a semi-trailer payload
)

type validateOpts struct {
	truck          string
	truckMaxWeight float64
	roomDXF        string
	ceiling        float64
	gap            float64
	out            string
}

func newValidateCmd(root *rootOpts) *cobra.Command {
	opts := validateOpts{gap: defaultPalletGap, truckMaxWeight: defaultTruckMaxWeight}

	cmd := &cobra.Command{
		Use:   "validate <plan.json>",
		Short: "Check a saved plan against the load rules",
		Long: `Validate every stack of a saved plan. With --truck or --room-dxf the stacks
are first arranged in rows inside the cargo space and the truck or room
rules are checked as well. Stacks that do not fit are listed.

The command fails when any error-severity rule is broken or when any stack
does not fit in the truck or room.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.truck != "" && opts.roomDXF != "" {
				return errors.New("give either --truck or --room-dxf, not both")
			}
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			plan, err := project.LoadPlan(args[0])
			if err != nil {
				return fmt.Errorf("load plan: %w", err)
			}
			return runValidate(cmd.Context(), cmd.OutOrStdout(), plan, opts, ws.config.ShowWarnings)
		},
	}

	cmd.Flags().StringVar(&opts.truck, "truck", "", "truck cargo space as WIDTHxHEIGHTxDEPTH in mm")
	cmd.Flags().Float64Var(&opts.truckMaxWeight, "truck-max-weight", defaultTruckMaxWeight, "truck payload limit in kg")
	cmd.Flags().StringVar(&opts.roomDXF, "room-dxf", "", "DXF file whose largest closed outline is the room floor")
	cmd.Flags().Float64Var(&opts.ceiling, "ceiling", 0, "room ceiling height in mm (required with --room-dxf)")
	cmd.Flags().Float64Var(&opts.gap, "gap", defaultPalletGap, "spacing between arranged stacks in mm")
	cmd.Flags().StringVarP(&opts.out, "output", "o", "", "save the plan including the truck or room arrangement")
	return cmd
}

func runValidate(ctx context.Context, w io.Writer, plan model.LoadPlan, opts validateOpts, showWarnings bool) error {
	logger := loggerFromContext(ctx)

	var result model.ValidationResult
	var unfit int
	switch {
	case opts.truck != "":
		truck, leftover, err := arrangeTruck(plan, opts)
		if err != nil {
			return err
		}
		plan.Truck = &truck
		unfit = len(leftover)
		result = validation.ValidateTruck(truck)
		printTitle(w, "Truck %.0f x %.0f x %.0f mm, %d stack(s)",
			truck.Dimensions.Width, truck.Dimensions.Height, truck.Dimensions.Depth, len(truck.Pallets))
		reportLeftover(w, leftover)
		printResult(w, "truck", result, showWarnings)

	case opts.roomDXF != "":
		room, leftover, err := arrangeRoom(ctx, plan, opts)
		if err != nil {
			return err
		}
		plan.Room = &room
		unfit = len(leftover)
		result = validation.ValidateRoom(room)
		printTitle(w, "Room %s, %d stack(s)", room.Label, len(room.Pallets))
		reportLeftover(w, leftover)
		printResult(w, "room", result, showWarnings)

	default:
		validations := validatePlan(plan)
		result = model.MergeResults(validations...)
		printTitle(w, "%d stack(s)", len(plan.Pallets))
		printViolations(w, plan, validations, showWarnings)
	}

	if opts.out != "" {
		if err := project.SavePlan(opts.out, plan); err != nil {
			return fmt.Errorf("save plan: %w", err)
		}
		printFile(w, opts.out)
	}

	logger.Debug("Validation finished", "errors", len(result.Errors()), "warnings", len(result.Warnings()), "unfit", unfit)
	if !result.IsValid {
		return fmt.Errorf("%w: %d error(s)", ErrInvalidLoad, len(result.Errors()))
	}
	if unfit > 0 {
		return fmt.Errorf("%w: %d stack(s) do not fit", ErrInvalidLoad, unfit)
	}
	printSuccess(w, "Load is valid (%d warning(s))", len(result.Warnings()))
	return nil
}

func arrangeTruck(plan model.LoadPlan, opts validateOpts) (model.Truck, []model.StackedPallet, error) {
	dims, err := parseDimensions(opts.truck)
	if err != nil {
		return model.Truck{}, nil, fmt.Errorf("--truck: %w", err)
	}
	truck := model.Truck{
		ID:         "truck",
		Dimensions: dims,
		MaxWeight:  opts.truckMaxWeight,
	}
	placed, leftover := engine.ArrangeRows(plan.Pallets, model.Point2D{}, dims.Width, dims.Depth, opts.gap)
	truck.Pallets = placed
	return truck, leftover, nil
}

func arrangeRoom(ctx context.Context, plan model.LoadPlan, opts validateOpts) (model.Room, []model.StackedPallet, error) {
	logger := loggerFromContext(ctx)
	if opts.ceiling <= 0 {
		return model.Room{}, nil, errors.New("--ceiling is required with --room-dxf")
	}

	imported := importer.ImportRoomDXF(opts.roomDXF)
	for _, msg := range imported.Warnings {
		logger.Warn(msg)
	}
	if len(imported.Errors) > 0 {
		return model.Room{}, nil, fmt.Errorf("import room: %s", strings.Join(imported.Errors, "; "))
	}

	room := model.Room{
		ID:            "room",
		Label:         opts.roomDXF,
		Floor:         imported.Floor,
		CeilingHeight: opts.ceiling,
	}

	minX, minZ, maxX, maxZ := polygonExtent(room.Floor)
	placed, leftover := engine.ArrangeRows(plan.Pallets, model.Point2D{X: minX, Z: minZ}, maxX-minX, maxZ-minZ, opts.gap)

	// rows are laid out over the bounding rectangle; drop stacks that land
	// outside a non-rectangular floor
	for _, pp := range placed {
		if footprintInside(pp, room.Floor) {
			room.Pallets = append(room.Pallets, pp)
		} else {
			leftover = append(leftover, pp.Stack)
		}
	}
	return room, leftover, nil
}

func reportLeftover(w io.Writer, leftover []model.StackedPallet) {
	if len(leftover) == 0 {
		return
	}
	printWarning(w, "%d stack(s) do not fit", len(leftover))
	for _, s := range leftover {
		printDetail(w, "%s", s.ID)
	}
}

func footprintInside(pp model.PlacedPallet, floor model.Polygon) bool {
	for _, c := range geometry.PalletFootprint(pp) {
		if !geometry.PointInPolygon(c, floor) && !geometry.PointOnPolygonEdge(c, floor, geometry.DefaultTolerance) {
			return false
		}
	}
	return true
}

func polygonExtent(poly model.Polygon) (minX, minZ, maxX, maxZ float64) {
	minX, minZ = math.Inf(1), math.Inf(1)
	maxX, maxZ = math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		minX = math.Min(minX, p.X)
		minZ = math.Min(minZ, p.Z)
		maxX = math.Max(maxX, p.X)
		maxZ = math.Max(maxZ, p.Z)
	}
	return minX, minZ, maxX, maxZ
}

// parseDimensions parses "WIDTHxHEIGHTxDEPTH" in mm, e.g. "2450x2700x13600".
func parseDimensions(s string) (model.Dimensions, error) {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return r == 'x' || r == '*' })
	if len(parts) != 3 {
		return model.Dimensions{}, fmt.Errorf("expected WIDTHxHEIGHTxDEPTH, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || f <= 0 {
			return model.Dimensions{}, fmt.Errorf("invalid dimension %q in %q", p, s)
		}
		v[i] = f
	}
	return model.Dimensions{Width: v[0], Height: v[1], Depth: v[2]}, nil
}
