package codec

// Stage names one step of an encode or decode pipeline. Stages are
// emitted in pipeline order; the set may grow in later versions.
type Stage string

const (
	StageCompress   Stage = "compress"
	StageBuildImage Stage = "build-image"
	StageEmbed      Stage = "embed"
	StageScan       Stage = "scan"
	StageExtract    Stage = "extract"
	StageDecompress Stage = "decompress"
	StageVerify     Stage = "verify"
)

// Progress receives discrete stage events during encode and decode.
// The codec calls it from the invoking goroutine only and never
// concurrently with itself; sinks that fan out to a UI or log decide
// their own synchronisation.
type Progress interface {
	Stage(stage Stage)
}

type nopProgress struct{}

func (nopProgress) Stage(Stage) {}
