package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/relnod/wavefront"
)

func runCat(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return cmd.Help()
	}
	inputPath := args[0]

	objectSet, err := wavefront.ParseFile(inputPath, wavefront.WithLogger(logger))
	if err != nil {
		logger.Error("failed to parse OBJ file", zap.String("path", inputPath), zap.Error(err))
		return err
	}

	logger.Info("parsed OBJ file", zap.String("path", inputPath), zap.Int("objects", objectSet.Len()))
	for i, object := range objectSet.Objects {
		fmt.Printf("object %d: name=%q vertices=%d texture_vertices=%d normal_vertices=%d groups=%d elements=%d\n",
			i+1, object.Name, len(object.VertexSet), len(object.TextureVertexSet),
			len(object.NormalVertexSet), len(object.GroupSet), len(object.ElementSet))
	}

	if mtlPath := viper.GetString("mtllib"); mtlPath != "" {
		materials, err := wavefront.ParseMaterialLibFile(mtlPath)
		if err != nil {
			logger.Warn("failed to parse material library", zap.String("path", mtlPath), zap.Error(err))
		} else {
			logger.Info("parsed material library", zap.String("path", mtlPath), zap.Int("materials", materials.Len()))
		}
	}

	if viper.GetBool("recompose") {
		var compositor wavefront.Compositor
		if viper.GetBool("debug") {
			compositor = &wavefront.DisplayObjectSetCompositor{}
		} else {
			compositor = &wavefront.TextObjectSetCompositor{}
		}
		fmt.Print(wavefront.Compose(objectSet, compositor))
	}

	return nil
}
