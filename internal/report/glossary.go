package report

import "github.com/KaramelBytes/dataloom-cli/internal/dataset"

// glossaryEntry pairs one glossary term with its definition. The glossary
// is static reference data rendered at the end of every report.
type glossaryEntry struct {
	term       string
	definition string
}

var glossaryEntries = []glossaryEntry{
	{"bool", "A boolean value, either true or false."},
	{"count", "The number of items in a dataset or column."},
	{"float64", "A 64-bit floating point number, used for values with a fractional part. Holds roughly 15 significant decimal digits."},
	{"int64", "A 64-bit signed integer. An int64 can represent both positive and negative integers, with a maximum possible value of 9,223,372,036,854,775,807 and a minimum possible value of -9,223,372,036,854,775,808."},
	{"iqr", "Interquartile range, the difference between the third quartile (Q3) and the first quartile (Q1). The interquartile range is a measure of statistical dispersion, or the spread of the data."},
	{"kurtosis", "A measure of the 'tailedness' of the probability distribution of a real-valued random variable. Kurtosis is the fourth central moment divided by the square of the variance. In this report's case, Fisher's definition is used, which results in 3.0 being subtracted from the result to give 0.0 for a normal distribution."},
	{"max", "The highest value in a dataset or column."},
	{"mean", "The average value of a dataset or column, calculated by summing all values and dividing by the count."},
	{"median", "The middle value in a sorted dataset or column."},
	{"min", "The lowest value in a dataset or column."},
	{"q1", "First quartile, the median of the lower half of the dataset or column."},
	{"q3", "Third quartile, the median of the upper half of the dataset or column."},
	{"skewness_bias", "Skewness calculated with a bias correction factor. Skewness is a metric for asymmetry or distortion, measuring the deviation of a given distribution of a random variable from a normal distribution."},
	{"skewness_raw", "Skewness calculated without bias correction. Skewness is a metric for asymmetry or distortion, measuring the deviation of a given distribution of a random variable from a normal distribution."},
	{"std_dev", "Standard deviation, a measure of the amount of variation or dispersion of a set of values."},
	{"string", "A string, or text value."},
}

// kindCategory describes the broad category a column type belongs to, shown
// in the data types overview table.
func kindCategory(k dataset.Kind) string {
	switch k {
	case dataset.Int:
		return "Numeric, discrete. Whole-number measurements and counts."
	case dataset.Float:
		return "Numeric, continuous. Real-valued measurements."
	case dataset.Bool:
		return "Boolean. Binary true/false indicator."
	default:
		return "Text. Free-form or categorical values."
	}
}
