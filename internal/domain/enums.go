package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}

// StageStatus represents the outcome of one pipeline stage.
type StageStatus string

const (
	StageCompleted StageStatus = "completed"
	StageFailed    StageStatus = "failed"
	StageSkipped   StageStatus = "skipped"
)

// ParameterStatus is the clinical classification of a single lab value.
type ParameterStatus string

const (
	StatusNormal                ParameterStatus = "Normal"
	StatusMildlyAbnormal        ParameterStatus = "Mildly Abnormal"
	StatusSignificantlyAbnormal ParameterStatus = "Significantly Abnormal"
)

// GraphParameters are the compulsory chartable parameters for a routine
// urine examination, in display order. The selection stage may return a
// subset but never anything outside this list.
var GraphParameters = []string{"specificGravity", "proteins", "sugar", "pusCells"}

// ScoreSentinel marks a scoring run that failed before the model answered.
const ScoreSentinel = -1
