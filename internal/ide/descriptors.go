package ide

import (
	"path/filepath"

	"github.com/strrl/jb-recent/pkg/models"
)

// RecordFile is the recent projects file relative to a versioned config directory
const RecordFile = "options/recentProjects.xml"

// DefaultDescriptors returns the built-in IDE table rooted at configHome
// (usually $XDG_CONFIG_HOME). Order is the order projects are collected in.
func DefaultDescriptors(configHome string) []models.IdeDescriptor {
	jetbrains := filepath.Join(configHome, "JetBrains")
	google := filepath.Join(configHome, "Google")

	return []models.IdeDescriptor{
		{Name: "CLion", Prefix: "CLion", ConfigRoot: jetbrains, Icon: "clion", DesktopFile: "jetbrains-clion.desktop"},
		{Name: "IntelliJIdea", Prefix: "IntelliJIdea", ConfigRoot: jetbrains, Icon: "idea", DesktopFile: "jetbrains-idea.desktop"},
		{Name: "PyCharm", Prefix: "PyCharm", ConfigRoot: jetbrains, Icon: "pycharm", DesktopFile: "pycharm-professional.desktop"},
		{Name: "GoLand", Prefix: "GoLand", ConfigRoot: jetbrains, Icon: "goland", DesktopFile: "jetbrains-goland.desktop"},
		{Name: "WebStorm", Prefix: "WebStorm", ConfigRoot: jetbrains, Icon: "webstorm", DesktopFile: "jetbrains-webstorm.desktop"},
		{Name: "PhpStorm", Prefix: "PhpStorm", ConfigRoot: jetbrains, Icon: "phpstorm", DesktopFile: "jetbrains-phpstorm.desktop"},
		{Name: "RubyMine", Prefix: "RubyMine", ConfigRoot: jetbrains, Icon: "rubymine", DesktopFile: "jetbrains-rubymine.desktop"},
		{Name: "Rider", Prefix: "Rider", ConfigRoot: jetbrains, Icon: "rider", DesktopFile: "jetbrains-rider.desktop"},
		{Name: "DataGrip", Prefix: "DataGrip", ConfigRoot: jetbrains, Icon: "datagrip", DesktopFile: "jetbrains-datagrip.desktop"},
		{Name: "AndroidStudio", Prefix: "AndroidStudio", ConfigRoot: google, Icon: "android-studio", DesktopFile: "jetbrains-studio.desktop"},
	}
}

// WithConfigRoot returns a copy of descriptors where every JetBrains-rooted
// entry uses root instead
func WithConfigRoot(descriptors []models.IdeDescriptor, root string) []models.IdeDescriptor {
	out := make([]models.IdeDescriptor, len(descriptors))
	for i, d := range descriptors {
		if filepath.Base(d.ConfigRoot) == "JetBrains" {
			d.ConfigRoot = root
		}
		out[i] = d
	}
	return out
}

// Find returns the descriptor with the given name
func Find(descriptors []models.IdeDescriptor, name string) (models.IdeDescriptor, bool) {
	for _, d := range descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return models.IdeDescriptor{}, false
}
