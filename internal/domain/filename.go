package domain

import "time"

const (
	exportPrefix = "data_gempa_"
	stampLayout  = "20060102_150405"

	// ReportDateLayout and ReportTimeLayout format the PDF metadata block.
	ReportDateLayout = "2006-01-02"
	ReportTimeLayout = "15:04:05"
)

// DefaultCSVName returns data_gempa_YYYYMMDD_HHMMSS.csv for t.
func DefaultCSVName(t time.Time) string {
	return exportPrefix + t.Format(stampLayout) + ".csv"
}

// DefaultPDFName returns data_gempa_YYYYMMDD_HHMMSS.pdf for t.
func DefaultPDFName(t time.Time) string {
	return exportPrefix + t.Format(stampLayout) + ".pdf"
}
