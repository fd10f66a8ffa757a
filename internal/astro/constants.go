package astro

// Fundamental constants (SI).
const (
	G       = 6.67430e-11     // m³ kg⁻¹ s⁻²
	C       = 2.99792458e8    // m/s
	SigmaSB = 5.670374419e-8  // W m⁻² K⁻⁴
	KB      = 1.380649e-23    // J/K
	ARad    = 4 * SigmaSB / C // J m⁻³ K⁻⁴
	MProton = 1.6726219e-27   // kg
	MU      = 1.66053906660e-27
	RGas    = 8.314462618 // J mol⁻¹ K⁻¹
	NA      = 6.02214076e23
)

// Astronomical constants.
const (
	MSun   = 1.98847e30 // kg
	RSun   = 6.96340e8  // m
	LSun   = 3.828e26   // W
	TSun   = 5772.0     // K
	AU     = 1.495978707e11
	Parsec = 3.0857e16
	Year   = 3.15576e7 // s
)

// Solar composition mass fractions.
const (
	XSun = 0.7381
	YSun = 0.2477
	ZSun = 0.0142
)

const electronVolt = 1.60218e-19

// Nuclear energy release per reaction chain (J).
const (
	QPP     = 26.731e6 * electronVolt
	QCNO    = 25.0e6 * electronVolt
	QTriple = 7.275e6 * electronVolt
)

const (
	// Kappa0 is the Kramers opacity coefficient in m²/kg.
	Kappa0 = 4.34e25

	GammaAdiabatic = 5.0 / 3.0
	GammaRadiation = 4.0 / 3.0

	// MSLifetimeCoeff is t_MS for one solar mass, in seconds.
	MSLifetimeCoeff = 1.0e10 * Year
	AlphaML         = 3.5
	BetaMR          = 0.8
)

// Structure integration boundaries and tolerances.
const (
	RCenter     = 1.0e-6 * RSun
	PSurface    = 1.0e3 // Pa
	TSurfaceMin = 3000.0
	RTol        = 1.0e-6
	ATol        = 1.0e-9
)
