package generator

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names.
const (
	StagePrepareOutput   StageName = "prepare_output"
	StageDiscoverPosts   StageName = "discover_posts"
	StageParsePosts      StageName = "parse_posts"
	StageLoadTemplates   StageName = "load_templates"
	StageSelectFrontPage StageName = "select_front_page"
	StageRenderPosts     StageName = "render_posts"
	StageRenderIndex     StageName = "render_index"
	StageRenderTags      StageName = "render_tags"
	StageRenderArchives  StageName = "render_archives"
	StageCopyStatic      StageName = "copy_static"
	StagePromoteOutput   StageName = "promote_output"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// contentStages read and parse the content tree.
func contentStages() []StageDef {
	return []StageDef{
		{StageDiscoverPosts, stageDiscoverPosts},
		{StageParsePosts, stageParsePosts},
	}
}

// renderStages turn a built index into the output tree. Static files are
// copied before any page is rendered so generated pages win on collisions.
func renderStages() []StageDef {
	return []StageDef{
		{StageLoadTemplates, stageLoadTemplates},
		{StageSelectFrontPage, stageSelectFrontPage},
		{StageCopyStatic, stageCopyStatic},
		{StageRenderPosts, stageRenderPosts},
		{StageRenderIndex, stageRenderIndex},
		{StageRenderTags, stageRenderTags},
		{StageRenderArchives, stageRenderArchives},
		{StagePromoteOutput, stagePromoteOutput},
	}
}
