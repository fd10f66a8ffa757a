package astro

import "math"

func SolarMass(kg float64) float64 { return kg / MSun }

func SolarRadius(m float64) float64 { return m / RSun }

func SolarLuminosity(w float64) float64 { return w / LSun }

func Years(seconds float64) float64 { return seconds / Year }

func Seconds(years float64) float64 { return years * Year }

// LogT returns log10 of a temperature in kelvin.
func LogT(kelvin float64) float64 { return math.Log10(kelvin) }

func FromLogT(logT float64) float64 { return math.Pow(10, logT) }
