package ios

import (
	"fmt"
	"strings"
)

const podfileTargetTemplate = `
target '%s' do
    use_frameworks! :linkage => podfile_properties['ios.useFrameworks'].to_sym if podfile_properties['ios.useFrameworks']
    use_frameworks! :linkage => ENV['USE_FRAMEWORKS'].to_sym if ENV['USE_FRAMEWORKS']
    pod '%s'
end`

// AddServiceToPodfile appends the extension target block unless the pod is
// already mentioned anywhere in the Podfile.
func AddServiceToPodfile(contents string) string {
	if strings.Contains(contents, ExtensionPod) {
		return contents
	}
	return contents + fmt.Sprintf(podfileTargetTemplate, ExtensionName, ExtensionPod)
}
