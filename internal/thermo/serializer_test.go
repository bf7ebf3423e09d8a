package thermo_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/thermobin/internal/binfile"
	"github.com/san-kum/thermobin/internal/config"
	"github.com/san-kum/thermobin/internal/grid"
	"github.com/san-kum/thermobin/internal/scales"
	"github.com/san-kum/thermobin/internal/thermo"
)

func constants() config.Floats {
	return config.Floats{
		"G":         9.80665,
		"RGAS_UNIV": 8.314462618,
		"MR_WATER":  0.01801528,
		"MR_DRY":    0.028966216,
		"CP_DRY":    1004.64,
		"RHO_DRY":   1.177,
		"W0":        1.0,
		"TIME0":     1000.0,
		"P0":        100000.0,
		"TEMP0":     273.15,
	}
}

func modelConfig() config.Floats {
	return config.Floats{"COUPLTSTEP": 30, "T_END": 30, "SDnspace": 1}
}

func ptr(v float64) *float64 { return &v }

var _ = Describe("Serializer", func() {
	var (
		dir        string
		gridPath   string
		outputPath string
		ser        *thermo.Serializer
		gen        *thermo.ConstUniform
	)

	listDir := func() []string {
		entries, err := os.ReadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		return names
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		gridPath = filepath.Join(dir, "gbxs.dat")
		outputPath = filepath.Join(dir, "thermo.dat")

		n, err := grid.WriteBoundaries(gridPath, []float64{0, 100, 200, 300}, []float64{0, 20}, []float64{0, 20}, 1000)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(3))

		ser = thermo.NewSerializer(nil)
		gen = &thermo.ConstUniform{
			Press: 101500, Temp: 289, Qvap: 0.0075, Qcond: 0,
			WVel: ptr(0.6), UVel: ptr(1.0), VVel: ptr(2.0),
		}
	})

	Context("with a fully populated bundle", func() {
		It("writes one file per field with its metadata", func() {
			written, err := ser.Write(outputPath, gen, modelConfig(), constants(), gridPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(written).To(HaveLen(7))

			units := map[string]byte{
				"press": 'P', "temp": 'K', "qvap": ' ', "qcond": ' ',
				"wvel": 'm', "uvel": 'm', "vvel": 'm',
			}
			for name, unit := range units {
				path := filepath.Join(dir, "thermo_"+name+".dat")
				Expect(written).To(ContainElement(path))

				f, err := binfile.ReadFile(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(f.Vars).To(HaveLen(1))
				Expect(f.Vars[0].N).To(BeEquivalentTo(6))
				Expect(f.Vars[0].DType).To(Equal(binfile.Float64))
				Expect(f.Vars[0].Unit).To(Equal(unit), name)
				Expect(f.Meta).To(ContainSubstring("flattened array of " + name))
				Expect(f.Meta).To(ContainSubstring("[ngridboxes, time] = [3, 2]"))
				Expect(f.Meta).To(ContainSubstring("contains 6 datapoints"))
			}
			Expect(listDir()).To(HaveLen(8))
		})

		It("stores the scale factor of each field", func() {
			_, err := ser.Write(outputPath, gen, modelConfig(), constants(), gridPath)
			Expect(err).NotTo(HaveOccurred())

			press, err := binfile.ReadFile(filepath.Join(dir, "thermo_press.dat"))
			Expect(err).NotTo(HaveOccurred())
			Expect(press.Vars[0].ScaleFactor).To(Equal(100000.0))
			vals, err := press.Float64s(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(vals).To(HaveEach(BeNumerically("~", 1.015, 1e-12)))

			temp, err := binfile.ReadFile(filepath.Join(dir, "thermo_temp.dat"))
			Expect(err).NotTo(HaveOccurred())
			Expect(temp.Vars[0].ScaleFactor).To(Equal(273.15))
		})

		It("reads back the physical values", func() {
			_, err := ser.Write(outputPath, gen, modelConfig(), constants(), gridPath)
			Expect(err).NotTo(HaveOccurred())

			in, err := scales.Derive(constants(), modelConfig())
			Expect(err).NotTo(HaveOccurred())
			b, err := thermo.ReadFields(outputPath, in.Scales())
			Expect(err).NotTo(HaveOccurred())
			Expect(b[thermo.Press].Float64s()).To(HaveEach(BeNumerically("~", 101500, 1e-6)))
			Expect(b[thermo.VVel].Float64s()).To(HaveEach(BeNumerically("~", 2.0, 1e-12)))
		})

		It("hands each field to the writer", func() {
			var got []thermo.SerializedField
			ser.Writer = thermo.FieldWriterFunc(func(path string, f thermo.SerializedField) error {
				got = append(got, f)
				return nil
			})

			_, err := ser.Write(outputPath, gen, modelConfig(), constants(), gridPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(7))
			Expect(got[0].Name).To(Equal(thermo.Press))
			Expect(got[4].Name).To(Equal(thermo.WVel))
			Expect(got[4].ScaleFactor).To(Equal(1.0))
			Expect(got[4].Length).To(Equal(6))
			Expect(got[4].DType).To(Equal(binfile.Float64))
		})
	})

	Context("with an omitted velocity component", func() {
		It("writes no file for it", func() {
			gen.VVel = nil

			written, err := ser.Write(outputPath, gen, modelConfig(), constants(), gridPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(written).To(HaveLen(6))
			Expect(filepath.Join(dir, "thermo_vvel.dat")).NotTo(BeAnExistingFile())
			Expect(filepath.Join(dir, "thermo_uvel.dat")).To(BeAnExistingFile())
		})
	})

	Context("when inputs are invalid", func() {
		It("requires the grid file to exist", func() {
			_, err := ser.Write(outputPath, gen, modelConfig(), constants(), filepath.Join(dir, "missing.dat"))

			var pe *thermo.PreconditionError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
			Expect(listDir()).To(ConsistOf("gbxs.dat"))
		})

		It("reports a missing constant", func() {
			consts := constants()
			delete(consts, "TEMP0")

			_, err := ser.Write(outputPath, gen, modelConfig(), consts, gridPath)
			var mk *scales.MissingKeyError
			Expect(errors.As(err, &mk)).To(BeTrue())
			Expect(mk.Key).To(Equal("TEMP0"))
			Expect(listDir()).To(ConsistOf("gbxs.dat"))
		})

		It("rejects fields of the wrong shape before writing", func() {
			short := thermo.GeneratorFunc(func(geom grid.Geometry, ngbx, ntime int) (thermo.Bundle, error) {
				b, err := gen.Generate(geom, ngbx, ntime)
				b[thermo.Temp] = thermo.Filled(5, 289)
				return b, err
			})

			_, err := ser.Write(outputPath, short, modelConfig(), constants(), gridPath)
			var sm *thermo.ShapeMismatchError
			Expect(errors.As(err, &sm)).To(BeTrue())
			Expect(sm.Field).To(Equal(thermo.Temp))
			Expect(sm.Length).To(Equal(5))
			Expect(sm.Want).To(Equal(6))

			var il *thermo.InconsistentLengthError
			Expect(errors.As(err, &il)).To(BeTrue())
			Expect(listDir()).To(ConsistOf("gbxs.dat"))
		})

		It("fails after converting a field of the wrong type", func() {
			single := thermo.GeneratorFunc(func(geom grid.Geometry, ngbx, ntime int) (thermo.Bundle, error) {
				b, err := gen.Generate(geom, ngbx, ntime)
				b[thermo.Qvap] = thermo.Float32Field(make([]float32, ngbx*ntime))
				return b, err
			})

			_, err := ser.Write(outputPath, single, modelConfig(), constants(), gridPath)
			var tc *thermo.TypeCoercionError
			Expect(errors.As(err, &tc)).To(BeTrue())
			Expect(tc.Field).To(Equal(thermo.Qvap))
			Expect(tc.From).To(Equal(binfile.Float32))
			Expect(listDir()).To(ConsistOf("gbxs.dat"))
		})

		It("surfaces coercion before shape problems", func() {
			both := thermo.GeneratorFunc(func(geom grid.Geometry, ngbx, ntime int) (thermo.Bundle, error) {
				b, err := gen.Generate(geom, ngbx, ntime)
				b[thermo.Qvap] = thermo.Float32Field(make([]float32, 2))
				return b, err
			})

			_, err := ser.Write(outputPath, both, modelConfig(), constants(), gridPath)
			var tc *thermo.TypeCoercionError
			Expect(errors.As(err, &tc)).To(BeTrue())
			var sm *thermo.ShapeMismatchError
			Expect(errors.As(err, &sm)).To(BeFalse())
		})
	})
})
